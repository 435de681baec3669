package ports

import (
	"context"

	"github.com/majikku/community-api/internal/core/domain"
)

// AnnouncementRepository defines persistence operations for announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, post *domain.AnnouncementPost) (*domain.AnnouncementPost, error)
	GetByID(ctx context.Context, id string) (*domain.AnnouncementPost, error)
	// List returns posts newest-first. category narrows the result when
	// non-empty.
	List(ctx context.Context, category domain.AnnouncementCategory) ([]*domain.AnnouncementPost, error)
	Update(ctx context.Context, post *domain.AnnouncementPost) error
	Delete(ctx context.Context, id string) error
}
