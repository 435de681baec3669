package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/majikku/community-api/internal/core/domain"
)

func TestHTTPErrorHandler_MapsDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"unauthorized", domain.ErrUnauthorized, http.StatusForbidden},
		{"wrapped unauthorized", fmt.Errorf("review submission 7: %w", domain.ErrUnauthorized), http.StatusForbidden},
		{"page not found", domain.ErrPageNotFound, http.StatusNotFound},
		{"submission not found", domain.ErrSubmissionNotFound, http.StatusNotFound},
		{"post not found", domain.ErrPostNotFound, http.StatusNotFound},
		{"submission closed", domain.ErrSubmissionClosed, http.StatusConflict},
		{"invalid category", domain.ErrInvalidCategory, http.StatusBadRequest},
		{"identity lookup", domain.ErrIdentityLookup, http.StatusBadGateway},
		{"storage unavailable", domain.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{"echo error", echo.NewHTTPError(http.StatusTeapot, "teapot"), http.StatusTeapot},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tt.err, c)
			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d", rec.Code, tt.code)
			}
		})
	}
}

func TestHTTPErrorHandler_DoesNotLeakInternalDetails(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	handler(errors.New("dial tcp 10.0.0.5: connection refused"), c)
	if body := rec.Body.String(); body != `{"error":"internal server error"}`+"\n" {
		t.Errorf("internal details leaked: %s", body)
	}
}
