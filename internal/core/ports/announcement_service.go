package ports

import (
	"context"

	"github.com/majikku/community-api/internal/core/domain"
)

// PostAnnouncementInput carries a new or edited announcement.
type PostAnnouncementInput struct {
	Actor    domain.Actor
	Title    string
	Content  string
	Category domain.AnnouncementCategory
}

// AnnouncementService defines use-case operations for announcements. Category
// authorization (admin → any, coordinator → EVENT, storyteller → LORE) is
// enforced before any storage access.
type AnnouncementService interface {
	Post(ctx context.Context, in PostAnnouncementInput) (*domain.AnnouncementPost, error)
	Get(ctx context.Context, id string) (*domain.AnnouncementPost, error)
	List(ctx context.Context, category domain.AnnouncementCategory) ([]*domain.AnnouncementPost, error)
	// Edit replaces title/content of an existing post. The actor must be
	// authorized for the post's category; the category itself is immutable.
	Edit(ctx context.Context, actor domain.Actor, id, title, content string) (*domain.AnnouncementPost, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
