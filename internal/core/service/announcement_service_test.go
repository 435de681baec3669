package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/majikku/community-api/internal/core/domain"
	"github.com/majikku/community-api/internal/core/ports"
)

type stubAnnouncementRepo struct {
	posts map[string]*domain.AnnouncementPost
	seq   int

	createErr error
	updateErr error
}

func newStubAnnouncementRepo() *stubAnnouncementRepo {
	return &stubAnnouncementRepo{posts: make(map[string]*domain.AnnouncementPost)}
}

func (r *stubAnnouncementRepo) Create(_ context.Context, post *domain.AnnouncementPost) (*domain.AnnouncementPost, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	cp := *post
	cp.ID = strconv.Itoa(r.seq)
	r.posts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubAnnouncementRepo) GetByID(_ context.Context, id string) (*domain.AnnouncementPost, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	cp := *post
	return &cp, nil
}

func (r *stubAnnouncementRepo) List(_ context.Context, category domain.AnnouncementCategory) ([]*domain.AnnouncementPost, error) {
	var posts []*domain.AnnouncementPost
	for _, p := range r.posts {
		if category != "" && p.Category != category {
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func (r *stubAnnouncementRepo) Update(_ context.Context, post *domain.AnnouncementPost) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.posts[post.ID]; !ok {
		return domain.ErrPostNotFound
	}
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r *stubAnnouncementRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func coordinatorActor() domain.Actor {
	return domain.Actor{ID: "3003", Username: "planner", Capabilities: domain.CapabilitySet{Coordinator: true}}
}

func adminActor() domain.Actor {
	return domain.Actor{ID: "4004", Username: "overseer", Capabilities: domain.CapabilitySet{Admin: true}}
}

func newAnnouncementSvc(repo *stubAnnouncementRepo) *AnnouncementService {
	return NewAnnouncementService(repo, zerolog.Nop())
}

func seedPost(t *testing.T, repo *stubAnnouncementRepo, category domain.AnnouncementCategory) *domain.AnnouncementPost {
	t.Helper()
	post, err := repo.Create(context.Background(), &domain.AnnouncementPost{
		Title: "Summer Festival", Content: "Join us.", Category: category,
		AuthorID: "3003", AuthorName: "planner", CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}

func TestAnnouncementService_CoordinatorPostsEvent(t *testing.T) {
	repo := newStubAnnouncementRepo()
	svc := newAnnouncementSvc(repo)

	post, err := svc.Post(context.Background(), ports.PostAnnouncementInput{
		Actor: coordinatorActor(), Title: "Summer Festival", Content: "Join us.", Category: domain.CategoryEvent,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if post.ID == "" || post.AuthorName != "planner" {
		t.Errorf("created post mismatch: %+v", post)
	}
}

func TestAnnouncementService_CategoryGateEnforcedBeforeStorage(t *testing.T) {
	repo := newStubAnnouncementRepo()
	repo.createErr = errors.New("must not be reached")
	svc := newAnnouncementSvc(repo)

	_, err := svc.Post(context.Background(), ports.PostAnnouncementInput{
		Actor: coordinatorActor(), Title: "Lore Drop", Content: "x", Category: domain.CategoryLore,
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("coordinator posting LORE: expected ErrUnauthorized, got: %v", err)
	}
}

func TestAnnouncementService_EditKeepsCategoryAndChecksIt(t *testing.T) {
	repo := newStubAnnouncementRepo()
	svc := newAnnouncementSvc(repo)
	post := seedPost(t, repo, domain.CategoryEvent)

	edited, err := svc.Edit(context.Background(), coordinatorActor(), post.ID, "Autumn Festival", "New date.")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if edited.Title != "Autumn Festival" || edited.Content != "New date." {
		t.Errorf("edited post mismatch: %+v", edited)
	}
	if edited.Category != domain.CategoryEvent {
		t.Errorf("category must never change on edit, got %s", edited.Category)
	}
}

func TestAnnouncementService_EditDeniedForWrongCategory(t *testing.T) {
	repo := newStubAnnouncementRepo()
	svc := newAnnouncementSvc(repo)
	post := seedPost(t, repo, domain.CategoryLore)

	_, err := svc.Edit(context.Background(), coordinatorActor(), post.ID, "x", "y")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("coordinator editing a LORE post: expected ErrUnauthorized, got: %v", err)
	}
	if got := repo.posts[post.ID].Title; got != "Summer Festival" {
		t.Errorf("post must be untouched after a denied edit, got %q", got)
	}
}

func TestAnnouncementService_DeleteByCategoryOwnerAndAdmin(t *testing.T) {
	repo := newStubAnnouncementRepo()
	svc := newAnnouncementSvc(repo)

	event := seedPost(t, repo, domain.CategoryEvent)
	if err := svc.Delete(context.Background(), coordinatorActor(), event.ID); err != nil {
		t.Fatalf("coordinator deleting an EVENT post: %v", err)
	}

	lore := seedPost(t, repo, domain.CategoryLore)
	if err := svc.Delete(context.Background(), coordinatorActor(), lore.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("coordinator deleting a LORE post: expected ErrUnauthorized, got: %v", err)
	}
	if err := svc.Delete(context.Background(), adminActor(), lore.ID); err != nil {
		t.Fatalf("admin deleting a LORE post: %v", err)
	}
	if len(repo.posts) != 0 {
		t.Errorf("expected all posts removed, %d left", len(repo.posts))
	}
}

func TestAnnouncementService_NoFlagsRejectedBeforeFetch(t *testing.T) {
	repo := newStubAnnouncementRepo()
	svc := newAnnouncementSvc(repo)
	post := seedPost(t, repo, domain.CategoryNews)

	guest := domain.Actor{ID: "5", Username: "guest"}
	if _, err := svc.Edit(context.Background(), guest, post.ID, "x", "y"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("guest edit: expected ErrUnauthorized, got: %v", err)
	}
	if err := svc.Delete(context.Background(), guest, post.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("guest delete: expected ErrUnauthorized, got: %v", err)
	}
}

func TestAnnouncementService_ListFiltersByCategory(t *testing.T) {
	repo := newStubAnnouncementRepo()
	svc := newAnnouncementSvc(repo)
	seedPost(t, repo, domain.CategoryEvent)
	seedPost(t, repo, domain.CategoryLore)

	events, err := svc.List(context.Background(), domain.CategoryEvent)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(events) != 1 || events[0].Category != domain.CategoryEvent {
		t.Errorf("filtered list mismatch: %+v", events)
	}

	all, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("unfiltered list size = %d, want 2", len(all))
	}
}
