package domain

import "time"

// AnnouncementCategory classifies an announcement post.
type AnnouncementCategory string

const (
	CategoryNews  AnnouncementCategory = "NEWS"
	CategoryEvent AnnouncementCategory = "EVENT"
	CategoryLore  AnnouncementCategory = "LORE"
)

// ParseAnnouncementCategory validates a raw category string.
func ParseAnnouncementCategory(s string) (AnnouncementCategory, bool) {
	switch AnnouncementCategory(s) {
	case CategoryNews, CategoryEvent, CategoryLore:
		return AnnouncementCategory(s), true
	}
	return "", false
}

// AnnouncementPost is a front-page announcement. No revision history: edits
// replace the stored content.
type AnnouncementPost struct {
	ID         string               `json:"id" bson:"_id,omitempty"`
	Title      string               `json:"title" bson:"title"`
	Content    string               `json:"content" bson:"content"`
	Category   AnnouncementCategory `json:"category" bson:"category"`
	AuthorID   string               `json:"author_id" bson:"author_id"`
	AuthorName string               `json:"author_name" bson:"author_name"`
	CreatedAt  time.Time            `json:"created_at" bson:"created_at"`
}
