package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/majikku/community-api/internal/api/metrics"
	"github.com/majikku/community-api/internal/core/domain"
	"github.com/majikku/community-api/internal/core/ports"
)

// previewLimit caps the content preview embedded in reviewer notifications so
// the webhook payload stays within Discord's field limits.
const previewLimit = 1000

// WikiService implements the wiki write/review workflow.
type WikiService struct {
	repo     ports.WikiRepository
	notifier ports.ReviewNotifier
	log      zerolog.Logger
}

func NewWikiService(repo ports.WikiRepository, notifier ports.ReviewNotifier, log zerolog.Logger) *WikiService {
	return &WikiService{repo: repo, notifier: notifier, log: log}
}

// CreateOrEditPage routes a wiki write. Bypass-eligible actors publish
// directly; wiki editors get a PENDING submission and reviewers are notified;
// everyone else is rejected before any storage access.
func (s *WikiService) CreateOrEditPage(ctx context.Context, in ports.WikiWriteInput) (*ports.WikiWriteResult, error) {
	caps := in.Actor.Capabilities
	if !caps.CanSubmitWiki() {
		return nil, fmt.Errorf("wiki write %q: %w", in.Slug, domain.ErrUnauthorized)
	}

	if caps.CanBypassWikiApproval() {
		page := &domain.WikiPage{
			Slug:      in.Slug,
			Title:     in.Title,
			Category:  in.Category,
			Content:   in.Content,
			UpdatedBy: in.Actor.Username,
			UpdatedAt: time.Now().UTC(),
		}
		if err := s.repo.UpsertPage(ctx, page); err != nil {
			return nil, fmt.Errorf("publish page %q: %w", in.Slug, err)
		}
		s.log.Info().Str("slug", in.Slug).Str("author", in.Actor.Username).Msg("wiki page published directly")
		metrics.WikiPagesPublishedTotal.WithLabelValues("direct").Inc()
		return &ports.WikiWriteResult{Published: true}, nil
	}

	subType := domain.SubmissionNew
	if _, err := s.repo.GetPage(ctx, in.Slug); err == nil {
		subType = domain.SubmissionEdit
	} else if !errors.Is(err, domain.ErrPageNotFound) {
		return nil, fmt.Errorf("check slug %q: %w", in.Slug, err)
	}

	sub, err := s.repo.CreateSubmission(ctx, ports.CreateSubmissionInput{
		Slug:       in.Slug,
		Title:      in.Title,
		Category:   in.Category,
		Content:    in.Content,
		AuthorID:   in.Actor.ID,
		AuthorName: in.Actor.Username,
		Type:       subType,
	})
	if err != nil {
		return nil, fmt.Errorf("queue submission for %q: %w", in.Slug, err)
	}

	// Fire-and-forget: a lost notification never reverses the transition.
	if err := s.notifier.NotifySubmission(ctx, sub, truncatePreview(sub.Content)); err != nil {
		s.log.Warn().Err(err).Int64("submission_id", sub.ID).Msg("reviewer notification failed")
		metrics.NotificationFailuresTotal.WithLabelValues("review").Inc()
	}

	s.log.Info().
		Int64("submission_id", sub.ID).
		Str("slug", sub.Slug).
		Str("type", string(sub.Type)).
		Str("author", sub.AuthorName).
		Msg("wiki submission queued")
	metrics.WikiSubmissionsTotal.WithLabelValues(string(subType)).Inc()

	return &ports.WikiWriteResult{SubmissionID: sub.ID}, nil
}

// Review applies a reviewer decision. Approval writes the page before marking
// the submission APPROVED, so a crash in between leaves it PENDING with the
// page already correct; the status update may then be retried idempotently.
func (s *WikiService) Review(ctx context.Context, in ports.ReviewInput) (*domain.WikiSubmission, error) {
	if !in.Actor.Capabilities.CanReviewWiki() {
		return nil, fmt.Errorf("review submission %d: %w", in.SubmissionID, domain.ErrUnauthorized)
	}

	sub, err := s.repo.GetSubmission(ctx, in.SubmissionID)
	if err != nil {
		return nil, fmt.Errorf("review submission %d: %w", in.SubmissionID, err)
	}

	switch in.Decision {
	case ports.DecisionApprove, ports.DecisionApproveEdited:
		return s.approve(ctx, sub, in)
	case ports.DecisionDeny:
		return s.deny(ctx, sub, in)
	default:
		return nil, fmt.Errorf("review submission %d: unknown decision %q", in.SubmissionID, in.Decision)
	}
}

func (s *WikiService) approve(ctx context.Context, sub *domain.WikiSubmission, in ports.ReviewInput) (*domain.WikiSubmission, error) {
	if sub.Status == domain.SubmissionApproved {
		// Re-approving is a no-op, not an error.
		return sub, nil
	}
	if !sub.Status.CanTransitionTo(domain.SubmissionApproved) {
		return nil, fmt.Errorf("approve submission %d: %w", sub.ID, domain.ErrSubmissionClosed)
	}

	title, category, content := sub.Title, sub.Category, sub.Content
	if in.Decision == ports.DecisionApproveEdited {
		if in.Overrides.Title != "" {
			title = in.Overrides.Title
		}
		if in.Overrides.Category != "" {
			category = in.Overrides.Category
		}
		if in.Overrides.Content != "" {
			content = in.Overrides.Content
		}
	}

	// Page write first. Last-write-wins: an independently published page at
	// the same slug is simply overwritten.
	page := &domain.WikiPage{
		Slug:      sub.Slug,
		Title:     title,
		Category:  category,
		Content:   content,
		UpdatedBy: in.Actor.Username,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.UpsertPage(ctx, page); err != nil {
		return nil, fmt.Errorf("approve submission %d: write page: %w", sub.ID, err)
	}

	if err := s.repo.SetSubmissionStatus(ctx, sub.ID, domain.SubmissionApproved, ""); err != nil {
		// The page write already took effect; the submission stays PENDING
		// and marking APPROVED can be retried.
		return nil, fmt.Errorf("approve submission %d: mark approved: %w", sub.ID, err)
	}

	sub.Status = domain.SubmissionApproved
	s.log.Info().
		Int64("submission_id", sub.ID).
		Str("slug", sub.Slug).
		Str("reviewer", in.Actor.Username).
		Bool("edited", in.Decision == ports.DecisionApproveEdited).
		Msg("wiki submission approved")
	metrics.WikiReviewsTotal.WithLabelValues("approved").Inc()
	metrics.WikiPagesPublishedTotal.WithLabelValues("review").Inc()
	return sub, nil
}

func (s *WikiService) deny(ctx context.Context, sub *domain.WikiSubmission, in ports.ReviewInput) (*domain.WikiSubmission, error) {
	if !sub.Status.CanTransitionTo(domain.SubmissionDenied) {
		return nil, fmt.Errorf("deny submission %d: %w", sub.ID, domain.ErrSubmissionClosed)
	}

	if err := s.repo.SetSubmissionStatus(ctx, sub.ID, domain.SubmissionDenied, in.Reason); err != nil {
		return nil, fmt.Errorf("deny submission %d: %w", sub.ID, err)
	}

	sub.Status = domain.SubmissionDenied
	sub.DenialReason = in.Reason
	s.log.Info().
		Int64("submission_id", sub.ID).
		Str("slug", sub.Slug).
		Str("reviewer", in.Actor.Username).
		Msg("wiki submission denied")
	metrics.WikiReviewsTotal.WithLabelValues("denied").Inc()
	return sub, nil
}

// ListPending returns the open queue; actors without review capability get an
// empty list.
func (s *WikiService) ListPending(ctx context.Context, actor domain.Actor) ([]*domain.WikiSubmission, error) {
	if !actor.Capabilities.CanReviewWiki() {
		return []*domain.WikiSubmission{}, nil
	}
	subs, err := s.repo.ListPendingSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending submissions: %w", err)
	}
	return subs, nil
}

// GetSubmission loads the submission's own proposed content, so a reviewer
// editing before approval starts from the submitted draft rather than the
// live page.
func (s *WikiService) GetSubmission(ctx context.Context, actor domain.Actor, id int64) (*domain.WikiSubmission, error) {
	if !actor.Capabilities.CanReviewWiki() {
		return nil, fmt.Errorf("get submission %d: %w", id, domain.ErrUnauthorized)
	}
	sub, err := s.repo.GetSubmission(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get submission %d: %w", id, err)
	}
	return sub, nil
}

func (s *WikiService) GetPage(ctx context.Context, slug string) (*domain.WikiPage, error) {
	page, err := s.repo.GetPage(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get page %q: %w", slug, err)
	}
	return page, nil
}

func (s *WikiService) ListPages(ctx context.Context) ([]*domain.WikiPage, error) {
	pages, err := s.repo.ListPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

// DeletePage removes a published page. Only bypass-level actors may delete.
func (s *WikiService) DeletePage(ctx context.Context, actor domain.Actor, slug string) error {
	if !actor.Capabilities.CanDeleteWiki() {
		return fmt.Errorf("delete page %q: %w", slug, domain.ErrUnauthorized)
	}
	if err := s.repo.DeletePage(ctx, slug); err != nil {
		return fmt.Errorf("delete page %q: %w", slug, err)
	}
	s.log.Info().Str("slug", slug).Str("actor", actor.Username).Msg("wiki page deleted")
	return nil
}

// truncatePreview caps s at previewLimit runes, marking the cut explicitly.
func truncatePreview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewLimit {
		return s
	}
	return string(runes[:previewLimit]) + "…"
}
