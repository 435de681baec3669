package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/majikku/community-api/internal/api/metrics"
	"github.com/majikku/community-api/internal/core/domain"
	"github.com/majikku/community-api/internal/core/ports"
)

// ReportService relays moderation report intake (staff applications and ban
// appeals) to the staff notification channel. Any authenticated actor may
// submit; a failed delivery is logged and counted but never surfaced, matching
// the fire-and-forget notification contract.
type ReportService struct {
	notifier ports.ReportNotifier
	log      zerolog.Logger
}

func NewReportService(notifier ports.ReportNotifier, log zerolog.Logger) *ReportService {
	return &ReportService{notifier: notifier, log: log}
}

func (s *ReportService) SubmitApplication(ctx context.Context, report ports.ApplicationReport) error {
	if report.Actor.ID == "" {
		return fmt.Errorf("submit application: %w", domain.ErrUnauthorized)
	}
	if err := s.notifier.NotifyApplication(ctx, report); err != nil {
		s.log.Warn().Err(err).Str("actor", report.Actor.Username).Str("team", report.Team).Msg("application notification failed")
		metrics.NotificationFailuresTotal.WithLabelValues("application").Inc()
		return nil
	}
	s.log.Info().Str("actor", report.Actor.Username).Str("team", report.Team).Msg("staff application submitted")
	return nil
}

func (s *ReportService) SubmitAppeal(ctx context.Context, report ports.AppealReport) error {
	if report.Actor.ID == "" {
		return fmt.Errorf("submit appeal: %w", domain.ErrUnauthorized)
	}
	if err := s.notifier.NotifyAppeal(ctx, report); err != nil {
		s.log.Warn().Err(err).Str("actor", report.Actor.Username).Msg("appeal notification failed")
		metrics.NotificationFailuresTotal.WithLabelValues("appeal").Inc()
		return nil
	}
	s.log.Info().Str("actor", report.Actor.Username).Msg("ban appeal submitted")
	return nil
}
