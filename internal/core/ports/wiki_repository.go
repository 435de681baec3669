package ports

import (
	"context"

	"github.com/majikku/community-api/internal/core/domain"
)

// CreateSubmissionInput carries the full proposed content captured when a
// non-bypass actor's wiki write is queued for review.
type CreateSubmissionInput struct {
	Slug       string
	Title      string
	Category   string
	Content    string
	AuthorID   string
	AuthorName string
	Type       domain.SubmissionType
}

// WikiRepository defines persistence for published pages and the submission
// queue. Any operation may fail with domain.ErrStorageUnavailable wrapped in
// the returned error.
type WikiRepository interface {
	GetPage(ctx context.Context, slug string) (*domain.WikiPage, error)
	// UpsertPage writes the page at its slug, fully replacing any prior row.
	UpsertPage(ctx context.Context, page *domain.WikiPage) error
	DeletePage(ctx context.Context, slug string) error
	ListPages(ctx context.Context) ([]*domain.WikiPage, error)

	// CreateSubmission inserts a PENDING submission and returns its
	// monotonically assigned id.
	CreateSubmission(ctx context.Context, in CreateSubmissionInput) (*domain.WikiSubmission, error)
	GetSubmission(ctx context.Context, id int64) (*domain.WikiSubmission, error)
	ListPendingSubmissions(ctx context.Context) ([]*domain.WikiSubmission, error)
	// SetSubmissionStatus records a terminal decision. reason is stored only
	// for DENIED.
	SetSubmissionStatus(ctx context.Context, id int64, status domain.SubmissionStatus, reason string) error
}
