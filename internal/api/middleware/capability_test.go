package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/majikku/community-api/internal/core/domain"
)

func requireWith(t *testing.T, actor *domain.Actor, mw echo.MiddlewareFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if actor != nil {
		c.Set(actorKey, *actor)
	}

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func TestRequire_PassesWhenCheckSucceeds(t *testing.T) {
	actor := domain.Actor{ID: "1", Capabilities: domain.CapabilitySet{WikiLead: true}}
	rec, err := requireWith(t, &actor, Require(domain.CapabilitySet.CanReviewWiki))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequire_ForbidsWhenCheckFails(t *testing.T) {
	actor := domain.Actor{ID: "1", Capabilities: domain.CapabilitySet{WikiEditor: true}}
	rec, err := requireWith(t, &actor, Require(domain.CapabilitySet.CanReviewWiki))
	if err != nil {
		t.Fatalf("expected the handler to write the response itself, got: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestRequire_UnauthorizedWithoutActor(t *testing.T) {
	_, err := requireWith(t, nil, Require(domain.CapabilitySet.CanReviewWiki))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got: %v", err)
	}
}

func TestRequireStaff_AnyFlagSuffices(t *testing.T) {
	for _, caps := range []domain.CapabilitySet{
		{Admin: true}, {Coordinator: true}, {Storyteller: true}, {WikiLead: true}, {WikiEditor: true},
	} {
		actor := domain.Actor{ID: "1", Capabilities: caps}
		rec, err := requireWith(t, &actor, RequireStaff())
		if err != nil || rec.Code != http.StatusOK {
			t.Errorf("caps %+v: staff gate rejected (%d, %v)", caps, rec.Code, err)
		}
	}

	guest := domain.Actor{ID: "2"}
	rec, err := requireWith(t, &guest, RequireStaff())
	if err != nil {
		t.Fatalf("expected a written 403, got: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("guest status = %d, want 403", rec.Code)
	}
}
