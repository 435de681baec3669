package ports

import (
	"context"

	"github.com/majikku/community-api/internal/core/domain"
)

// ReviewNotifier tells reviewers that a submission entered the queue.
// Delivery is fire-and-forget: a failure is logged by the caller and never
// blocks or reverses the create transition.
type ReviewNotifier interface {
	NotifySubmission(ctx context.Context, sub *domain.WikiSubmission, preview string) error
}

// ApplicationReport is a staff application submitted by a community member.
type ApplicationReport struct {
	Actor        domain.Actor
	Team         string
	HytaleName   string
	Age          string
	Timezone     string
	Availability string
	Answers      map[string]string
}

// AppealReport is a ban appeal submitted by a community member.
type AppealReport struct {
	Actor   domain.Actor
	Reason  string
	Apology string
}

// ReportNotifier relays moderation report intake to the staff channels.
type ReportNotifier interface {
	NotifyApplication(ctx context.Context, report ApplicationReport) error
	NotifyAppeal(ctx context.Context, report AppealReport) error
}
