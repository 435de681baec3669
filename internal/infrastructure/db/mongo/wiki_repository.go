package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/majikku/community-api/internal/core/domain"
	"github.com/majikku/community-api/internal/core/ports"
)

const (
	collectionPages       = "wiki_pages"
	collectionSubmissions = "wiki_submissions"
	collectionCounters    = "counters"

	submissionCounterKey = "wiki_submission_id"
)

// WikiRepository implements ports.WikiRepository on MongoDB. Pages are keyed
// by slug (_id); submission ids come from a counters document so they stay
// monotonic across restarts.
type WikiRepository struct {
	pages       *mongo.Collection
	submissions *mongo.Collection
	counters    *mongo.Collection
}

func NewWikiRepository(db *mongo.Database) *WikiRepository {
	return &WikiRepository{
		pages:       db.Collection(collectionPages),
		submissions: db.Collection(collectionSubmissions),
		counters:    db.Collection(collectionCounters),
	}
}

// storageErr maps a driver failure onto the retryable storage sentinel while
// keeping the underlying cause in the message.
func storageErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
}

func (r *WikiRepository) GetPage(ctx context.Context, slug string) (*domain.WikiPage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var page domain.WikiPage
	err := r.pages.FindOne(ctx, bson.M{"_id": slug}).Decode(&page)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPageNotFound
		}
		return nil, storageErr(err)
	}
	return &page, nil
}

// UpsertPage writes the page at its slug, fully replacing any prior row.
func (r *WikiRepository) UpsertPage(ctx context.Context, page *domain.WikiPage) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.pages.ReplaceOne(ctx, bson.M{"_id": page.Slug}, page, options.Replace().SetUpsert(true))
	if err != nil {
		return storageErr(err)
	}
	return nil
}

func (r *WikiRepository) DeletePage(ctx context.Context, slug string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.pages.DeleteOne(ctx, bson.M{"_id": slug})
	if err != nil {
		return storageErr(err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPageNotFound
	}
	return nil
}

func (r *WikiRepository) ListPages(ctx context.Context) ([]*domain.WikiPage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.pages.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{
		{Key: "category", Value: 1},
		{Key: "title", Value: 1},
	}))
	if err != nil {
		return nil, storageErr(err)
	}
	defer cur.Close(ctx)

	var pages []*domain.WikiPage
	if err := cur.All(ctx, &pages); err != nil {
		return nil, storageErr(err)
	}
	return pages, nil
}

// CreateSubmission inserts a PENDING submission with the next monotonic id.
func (r *WikiRepository) CreateSubmission(ctx context.Context, in ports.CreateSubmissionInput) (*domain.WikiSubmission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.nextSubmissionID(ctx)
	if err != nil {
		return nil, err
	}

	sub := &domain.WikiSubmission{
		ID:         id,
		Slug:       in.Slug,
		Title:      in.Title,
		Category:   in.Category,
		Content:    in.Content,
		AuthorID:   in.AuthorID,
		AuthorName: in.AuthorName,
		Type:       in.Type,
		Status:     domain.SubmissionPending,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := r.submissions.InsertOne(ctx, sub); err != nil {
		return nil, storageErr(err)
	}
	return sub, nil
}

func (r *WikiRepository) GetSubmission(ctx context.Context, id int64) (*domain.WikiSubmission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var sub domain.WikiSubmission
	err := r.submissions.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, storageErr(err)
	}
	return &sub, nil
}

func (r *WikiRepository) ListPendingSubmissions(ctx context.Context) ([]*domain.WikiSubmission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.submissions.Find(ctx,
		bson.M{"status": domain.SubmissionPending},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, storageErr(err)
	}
	defer cur.Close(ctx)

	var subs []*domain.WikiSubmission
	if err := cur.All(ctx, &subs); err != nil {
		return nil, storageErr(err)
	}
	return subs, nil
}

// SetSubmissionStatus applies a terminal decision. The filter matches PENDING
// only, so closed submissions stay immutable at the storage level; retrying an
// update that already applied is reported as success.
func (r *WikiRepository) SetSubmissionStatus(ctx context.Context, id int64, status domain.SubmissionStatus, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": status}
	if status == domain.SubmissionDenied {
		set["denial_reason"] = reason
	}

	res, err := r.submissions.UpdateOne(ctx,
		bson.M{"_id": id, "status": domain.SubmissionPending},
		bson.M{"$set": set},
	)
	if err != nil {
		return storageErr(err)
	}
	if res.MatchedCount == 0 {
		sub, err := r.GetSubmission(ctx, id)
		if err != nil {
			return err
		}
		if sub.Status == status {
			return nil // already applied
		}
		return domain.ErrSubmissionClosed
	}
	return nil
}

// nextSubmissionID atomically increments the submission counter.
func (r *WikiRepository) nextSubmissionID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": submissionCounterKey},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, storageErr(err)
	}
	return counter.Seq, nil
}

// EnsureIndexes creates the indexes backing the queue and list queries.
func (r *WikiRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.submissions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "slug", Value: 1}}},
	})
	return err
}
