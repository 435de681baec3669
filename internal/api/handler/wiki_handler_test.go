package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/majikku/community-api/internal/core/domain"
	"github.com/majikku/community-api/internal/core/ports"
)

type stubWikiService struct {
	writeResult *ports.WikiWriteResult
	writeInput  ports.WikiWriteInput
	reviewInput ports.ReviewInput
	reviewed    *domain.WikiSubmission
	err         error
}

func (s *stubWikiService) CreateOrEditPage(_ context.Context, in ports.WikiWriteInput) (*ports.WikiWriteResult, error) {
	s.writeInput = in
	return s.writeResult, s.err
}

func (s *stubWikiService) Review(_ context.Context, in ports.ReviewInput) (*domain.WikiSubmission, error) {
	s.reviewInput = in
	return s.reviewed, s.err
}

func (s *stubWikiService) ListPending(context.Context, domain.Actor) ([]*domain.WikiSubmission, error) {
	return []*domain.WikiSubmission{}, s.err
}

func (s *stubWikiService) GetSubmission(context.Context, domain.Actor, int64) (*domain.WikiSubmission, error) {
	return s.reviewed, s.err
}

func (s *stubWikiService) GetPage(context.Context, string) (*domain.WikiPage, error) {
	return &domain.WikiPage{Slug: "races"}, s.err
}

func (s *stubWikiService) ListPages(context.Context) ([]*domain.WikiPage, error) {
	return []*domain.WikiPage{}, s.err
}

func (s *stubWikiService) DeletePage(context.Context, domain.Actor, string) error {
	return s.err
}

func wikiContext(t *testing.T, method, path, body string, actor *domain.Actor) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set("actor", *actor)
	}
	return c, rec
}

func TestWikiHandler_WriteQueuedResponse(t *testing.T) {
	svc := &stubWikiService{writeResult: &ports.WikiWriteResult{SubmissionID: 7}}
	h := NewWikiHandler(svc)

	actor := domain.Actor{ID: "42", Username: "scribe", Capabilities: domain.CapabilitySet{WikiEditor: true}}
	c, rec := wikiContext(t, http.MethodPut, "/v1/wiki/races",
		`{"title":"Races","category":"Lore","content":"The peoples of the realm."}`, &actor)
	c.SetParamNames("slug")
	c.SetParamValues("races")

	if err := h.Write(c); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if svc.writeInput.Slug != "races" || svc.writeInput.Actor.ID != "42" {
		t.Errorf("service input mismatch: %+v", svc.writeInput)
	}

	var resp struct {
		Published    bool   `json:"published"`
		SubmissionID *int64 `json:"submission_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Published || resp.SubmissionID == nil || *resp.SubmissionID != 7 {
		t.Errorf("response mismatch: %+v", resp)
	}
}

func TestWikiHandler_WritePublishedOmitsSubmissionID(t *testing.T) {
	svc := &stubWikiService{writeResult: &ports.WikiWriteResult{Published: true}}
	h := NewWikiHandler(svc)

	actor := domain.Actor{ID: "42", Capabilities: domain.CapabilitySet{Admin: true}}
	c, rec := wikiContext(t, http.MethodPut, "/v1/wiki/races",
		`{"title":"Races","category":"Lore","content":"x"}`, &actor)
	c.SetParamNames("slug")
	c.SetParamValues("races")

	if err := h.Write(c); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if strings.Contains(rec.Body.String(), "submission_id") {
		t.Errorf("direct publish must not report a submission id: %s", rec.Body.String())
	}
}

func TestWikiHandler_WriteValidationFailure(t *testing.T) {
	h := NewWikiHandler(&stubWikiService{})
	actor := domain.Actor{ID: "42"}
	c, rec := wikiContext(t, http.MethodPut, "/v1/wiki/races", `{"title":"Races"}`, &actor)
	c.SetParamNames("slug")
	c.SetParamValues("races")

	if err := h.Write(c); err != nil {
		t.Fatalf("validation failures are written, not returned: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestWikiHandler_WriteWithoutActorUnauthorized(t *testing.T) {
	h := NewWikiHandler(&stubWikiService{})
	c, _ := wikiContext(t, http.MethodPut, "/v1/wiki/races",
		`{"title":"Races","category":"Lore","content":"x"}`, nil)

	err := h.Write(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got: %v", err)
	}
}

func TestWikiHandler_ReviewDenyRequiresReason(t *testing.T) {
	h := NewWikiHandler(&stubWikiService{})
	actor := domain.Actor{ID: "42", Capabilities: domain.CapabilitySet{WikiLead: true}}
	c, rec := wikiContext(t, http.MethodPost, "/v1/wiki/submissions/7/review", `{"decision":"deny"}`, &actor)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Review(c); err != nil {
		t.Fatalf("expected a written 400, got: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestWikiHandler_ReviewMapsDecisionAndOverrides(t *testing.T) {
	svc := &stubWikiService{reviewed: &domain.WikiSubmission{ID: 7, Status: domain.SubmissionApproved}}
	h := NewWikiHandler(svc)

	actor := domain.Actor{ID: "42", Capabilities: domain.CapabilitySet{WikiLead: true}}
	c, _ := wikiContext(t, http.MethodPost, "/v1/wiki/submissions/7/review",
		`{"decision":"approve_edited","content":"Polished prose."}`, &actor)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Review(c); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if svc.reviewInput.Decision != ports.DecisionApproveEdited {
		t.Errorf("decision = %s, want APPROVE_EDITED", svc.reviewInput.Decision)
	}
	if svc.reviewInput.Overrides.Content != "Polished prose." {
		t.Errorf("overrides not forwarded: %+v", svc.reviewInput.Overrides)
	}
}

func TestWikiHandler_ReviewRejectsUnknownDecision(t *testing.T) {
	h := NewWikiHandler(&stubWikiService{})
	actor := domain.Actor{ID: "42"}
	c, rec := wikiContext(t, http.MethodPost, "/v1/wiki/submissions/7/review", `{"decision":"escalate"}`, &actor)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Review(c); err != nil {
		t.Fatalf("expected a written 400, got: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestWikiHandler_ReviewRejectsNonNumericID(t *testing.T) {
	h := NewWikiHandler(&stubWikiService{})
	actor := domain.Actor{ID: "42"}
	c, _ := wikiContext(t, http.MethodPost, "/v1/wiki/submissions/latest/review", `{"decision":"approve"}`, &actor)
	c.SetParamNames("id")
	c.SetParamValues("latest")

	err := h.Review(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got: %v", err)
	}
}
