package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/majikku/community-api/internal/core/ports"
)

func rosterRules() []TitleRule {
	return []TitleRule{
		{RoleIDs: []string{"r-admin"}, Title: "Administrator"},
		{RoleIDs: []string{"r-lead"}, Title: "Wiki Lead"},
		{RoleIDs: []string{"r-editor"}, Title: "Wiki Editor"},
	}
}

func TestRosterService_BuildsTitledRoster(t *testing.T) {
	provider := &stubRoleProvider{members: []ports.GuildMember{
		{ID: "1", Username: "alpha", RoleIDs: []string{"r-admin"}},
		{ID: "2", Username: "beta", Nickname: "Bee", RoleIDs: []string{"r-editor"}},
		{ID: "3", Username: "gamma", RoleIDs: []string{"r-member"}},
	}}
	svc := NewRosterService(provider, rosterRules(), time.Minute, nil, zerolog.Nop())

	roster, err := svc.Staff(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(roster) != 2 {
		t.Fatalf("roster size = %d, want 2 (members without a staff role excluded)", len(roster))
	}
	if roster[0].Title != "Administrator" || roster[0].Name != "alpha" {
		t.Errorf("first entry mismatch: %+v", roster[0])
	}
	if roster[1].Name != "Bee" {
		t.Errorf("nickname must win over username, got %q", roster[1].Name)
	}
}

func TestRosterService_FirstMatchingRuleWins(t *testing.T) {
	provider := &stubRoleProvider{members: []ports.GuildMember{
		{ID: "1", Username: "multi", RoleIDs: []string{"r-editor", "r-admin"}},
	}}
	svc := NewRosterService(provider, rosterRules(), time.Minute, nil, zerolog.Nop())

	roster, err := svc.Staff(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if roster[0].Title != "Administrator" {
		t.Errorf("title = %q, want the highest-listed rule to win", roster[0].Title)
	}
}

func TestRosterService_CachedUntilTTLExpires(t *testing.T) {
	provider := &stubRoleProvider{members: []ports.GuildMember{
		{ID: "1", Username: "alpha", RoleIDs: []string{"r-admin"}},
	}}
	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc := NewRosterService(provider, rosterRules(), 5*time.Minute, func() time.Time { return current }, zerolog.Nop())

	if _, err := svc.Staff(context.Background()); err != nil {
		t.Fatalf("initial fetch: %v", err)
	}

	current = current.Add(4 * time.Minute)
	if _, err := svc.Staff(context.Background()); err != nil {
		t.Fatalf("fetch within ttl: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1 while the roster is fresh", provider.calls)
	}

	current = current.Add(2 * time.Minute)
	if _, err := svc.Staff(context.Background()); err != nil {
		t.Fatalf("fetch past ttl: %v", err)
	}
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want a refresh after the ttl passed", provider.calls)
	}
}

func TestRosterService_ServesStaleRosterOnRefreshFailure(t *testing.T) {
	provider := &stubRoleProvider{members: []ports.GuildMember{
		{ID: "1", Username: "alpha", RoleIDs: []string{"r-admin"}},
	}}
	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc := NewRosterService(provider, rosterRules(), time.Minute, func() time.Time { return current }, zerolog.Nop())

	if _, err := svc.Staff(context.Background()); err != nil {
		t.Fatalf("initial fetch: %v", err)
	}

	current = current.Add(5 * time.Minute)
	provider.err = errors.New("discord unavailable")

	roster, err := svc.Staff(context.Background())
	if err != nil {
		t.Fatalf("stale roster must be served on refresh failure: %v", err)
	}
	if len(roster) != 1 || roster[0].Name != "alpha" {
		t.Errorf("stale roster mismatch: %+v", roster)
	}
}

func TestRosterService_InitialFetchFailureSurfaces(t *testing.T) {
	provider := &stubRoleProvider{err: errors.New("discord unavailable")}
	svc := NewRosterService(provider, rosterRules(), time.Minute, nil, zerolog.Nop())

	if _, err := svc.Staff(context.Background()); err == nil {
		t.Fatalf("with no cached roster the failure must surface")
	}
}
