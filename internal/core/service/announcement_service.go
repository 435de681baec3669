package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/majikku/community-api/internal/api/metrics"
	"github.com/majikku/community-api/internal/core/domain"
	"github.com/majikku/community-api/internal/core/ports"
)

// AnnouncementService implements announcement CRUD with per-category
// authorization.
type AnnouncementService struct {
	repo ports.AnnouncementRepository
	log  zerolog.Logger
}

func NewAnnouncementService(repo ports.AnnouncementRepository, log zerolog.Logger) *AnnouncementService {
	return &AnnouncementService{repo: repo, log: log}
}

func (s *AnnouncementService) Post(ctx context.Context, in ports.PostAnnouncementInput) (*domain.AnnouncementPost, error) {
	if !in.Actor.Capabilities.CanPostAnnouncement(in.Category) {
		return nil, fmt.Errorf("post %s announcement: %w", in.Category, domain.ErrUnauthorized)
	}

	post := &domain.AnnouncementPost{
		Title:      in.Title,
		Content:    in.Content,
		Category:   in.Category,
		AuthorID:   in.Actor.ID,
		AuthorName: in.Actor.Username,
		CreatedAt:  time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("post announcement: %w", err)
	}

	s.log.Info().Str("id", created.ID).Str("category", string(created.Category)).Str("author", created.AuthorName).Msg("announcement posted")
	metrics.AnnouncementsPostedTotal.WithLabelValues(string(created.Category)).Inc()
	return created, nil
}

func (s *AnnouncementService) Get(ctx context.Context, id string) (*domain.AnnouncementPost, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get announcement %s: %w", id, err)
	}
	return post, nil
}

func (s *AnnouncementService) List(ctx context.Context, category domain.AnnouncementCategory) ([]*domain.AnnouncementPost, error) {
	posts, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return posts, nil
}

// Edit replaces title and content. The actor must be authorized for the
// existing post's category; the category itself never changes on edit.
func (s *AnnouncementService) Edit(ctx context.Context, actor domain.Actor, id, title, content string) (*domain.AnnouncementPost, error) {
	// Cheap gate before touching storage; the category check needs the row.
	if !actor.Capabilities.Any() {
		return nil, fmt.Errorf("edit announcement %s: %w", id, domain.ErrUnauthorized)
	}
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("edit announcement %s: %w", id, err)
	}
	if !actor.Capabilities.CanPostAnnouncement(post.Category) {
		return nil, fmt.Errorf("edit %s announcement: %w", post.Category, domain.ErrUnauthorized)
	}

	post.Title = title
	post.Content = content
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("edit announcement %s: %w", id, err)
	}
	return post, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.Capabilities.Any() {
		return fmt.Errorf("delete announcement %s: %w", id, domain.ErrUnauthorized)
	}
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete announcement %s: %w", id, err)
	}
	if !actor.Capabilities.CanPostAnnouncement(post.Category) {
		return fmt.Errorf("delete %s announcement: %w", post.Category, domain.ErrUnauthorized)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete announcement %s: %w", id, err)
	}
	s.log.Info().Str("id", id).Str("actor", actor.Username).Msg("announcement deleted")
	return nil
}
