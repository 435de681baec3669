package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/majikku/community-api/internal/core/domain"
)

const collectionAnnouncements = "announcements"

// AnnouncementRepository implements ports.AnnouncementRepository on MongoDB.
type AnnouncementRepository struct {
	col *mongo.Collection
}

func NewAnnouncementRepository(db *mongo.Database) *AnnouncementRepository {
	return &AnnouncementRepository{col: db.Collection(collectionAnnouncements)}
}

type announcementDoc struct {
	ID         primitive.ObjectID          `bson:"_id,omitempty"`
	Title      string                      `bson:"title"`
	Content    string                      `bson:"content"`
	Category   domain.AnnouncementCategory `bson:"category"`
	AuthorID   string                      `bson:"author_id"`
	AuthorName string                      `bson:"author_name"`
	CreatedAt  time.Time                   `bson:"created_at"`
}

func (d announcementDoc) toDomain() *domain.AnnouncementPost {
	return &domain.AnnouncementPost{
		ID:         d.ID.Hex(),
		Title:      d.Title,
		Content:    d.Content,
		Category:   d.Category,
		AuthorID:   d.AuthorID,
		AuthorName: d.AuthorName,
		CreatedAt:  d.CreatedAt,
	}
}

func (r *AnnouncementRepository) Create(ctx context.Context, post *domain.AnnouncementPost) (*domain.AnnouncementPost, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := announcementDoc{
		Title:      post.Title,
		Content:    post.Content,
		Category:   post.Category,
		AuthorID:   post.AuthorID,
		AuthorName: post.AuthorName,
		CreatedAt:  post.CreatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, storageErr(err)
	}

	created := *post
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *AnnouncementRepository) GetByID(ctx context.Context, id string) (*domain.AnnouncementPost, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	var doc announcementDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, storageErr(err)
	}
	return doc.toDomain(), nil
}

// List returns posts newest-first, optionally narrowed by category.
func (r *AnnouncementRepository) List(ctx context.Context, category domain.AnnouncementCategory) ([]*domain.AnnouncementPost, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, storageErr(err)
	}
	defer cur.Close(ctx)

	var docs []announcementDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr(err)
	}

	posts := make([]*domain.AnnouncementPost, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toDomain())
	}
	return posts, nil
}

func (r *AnnouncementRepository) Update(ctx context.Context, post *domain.AnnouncementPost) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(post.ID)
	if err != nil {
		return domain.ErrPostNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":   post.Title,
		"content": post.Content,
	}})
	if err != nil {
		return storageErr(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storageErr(err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// EnsureIndexes creates the index backing the category-filtered listing.
func (r *AnnouncementRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}
