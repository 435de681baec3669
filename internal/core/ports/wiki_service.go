package ports

import (
	"context"

	"github.com/majikku/community-api/internal/core/domain"
)

// WikiWriteInput is a create-or-edit attempt against a wiki slug.
type WikiWriteInput struct {
	Actor    domain.Actor
	Slug     string
	Title    string
	Category string
	Content  string
}

// WikiWriteResult reports how a write was routed. Published means the page was
// written directly (bypass path); otherwise SubmissionID identifies the queued
// PENDING submission.
type WikiWriteResult struct {
	Published    bool
	SubmissionID int64
}

// ReviewDecision is a reviewer's verdict on a pending submission.
type ReviewDecision string

const (
	DecisionApprove       ReviewDecision = "APPROVE"
	DecisionApproveEdited ReviewDecision = "APPROVE_EDITED"
	DecisionDeny          ReviewDecision = "DENY"
)

// ReviewOverrides carries reviewer-edited fields for APPROVE_EDITED. Empty
// fields fall back to the originally submitted values.
type ReviewOverrides struct {
	Title    string
	Category string
	Content  string
}

// ReviewInput carries a reviewer's decision on submission SubmissionID.
type ReviewInput struct {
	Actor        domain.Actor
	SubmissionID int64
	Decision     ReviewDecision
	Overrides    ReviewOverrides
	Reason       string // required for DENY
}

// WikiService defines the use-case operations of the wiki subsystem.
type WikiService interface {
	// CreateOrEditPage routes a write: direct publish for bypass-eligible
	// actors, a PENDING submission plus reviewer notification for editors,
	// domain.ErrUnauthorized for everyone else.
	CreateOrEditPage(ctx context.Context, in WikiWriteInput) (*WikiWriteResult, error)
	// Review applies a terminal decision to a PENDING submission.
	Review(ctx context.Context, in ReviewInput) (*domain.WikiSubmission, error)
	// ListPending returns the open submission queue. Actors lacking review
	// capability get an empty list, not an error.
	ListPending(ctx context.Context, actor domain.Actor) ([]*domain.WikiSubmission, error)
	// GetSubmission loads a submission's own proposed content, so a reviewer
	// editing before approval starts from the submitted draft.
	GetSubmission(ctx context.Context, actor domain.Actor, id int64) (*domain.WikiSubmission, error)
	GetPage(ctx context.Context, slug string) (*domain.WikiPage, error)
	ListPages(ctx context.Context) ([]*domain.WikiPage, error)
	DeletePage(ctx context.Context, actor domain.Actor, slug string) error
}
