package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/majikku/community-api/internal/core/ports"
)

const defaultRosterTTL = 5 * time.Minute

// TitleRule maps a role-id group to a staff title. Rules are evaluated in
// declaration order and the first match wins, so overlapping groups resolve
// deterministically.
type TitleRule struct {
	RoleIDs []string
	Title   string
}

// StaffMember is a roster entry shown on the public staff page.
type StaffMember struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Title     string `json:"title"`
}

// RosterService builds the staff roster from guild membership. The roster is
// one shared value refreshed lazily once its TTL passes; roster data is
// read-mostly and a few minutes of staleness is acceptable.
type RosterService struct {
	provider ports.RoleProvider
	rules    []TitleRule
	ttl      time.Duration
	now      func() time.Time
	log      zerolog.Logger

	mu        sync.Mutex
	cached    []StaffMember
	fetchedAt time.Time
}

// NewRosterService returns a RosterService. now may be nil (time.Now); a
// non-positive ttl falls back to 5 minutes.
func NewRosterService(provider ports.RoleProvider, rules []TitleRule, ttl time.Duration, now func() time.Time, log zerolog.Logger) *RosterService {
	if ttl <= 0 {
		ttl = defaultRosterTTL
	}
	if now == nil {
		now = time.Now
	}
	return &RosterService{provider: provider, rules: rules, ttl: ttl, now: now, log: log}
}

// Staff returns the current roster, refreshing from the provider when the
// cached value expired. A failed refresh serves the stale roster when one
// exists.
func (s *RosterService) Staff(ctx context.Context) ([]StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.now().Sub(s.fetchedAt) < s.ttl {
		return s.cached, nil
	}

	members, err := s.provider.ListMembers(ctx)
	if err != nil {
		if s.cached != nil {
			s.log.Warn().Err(err).Msg("roster refresh failed, serving stale roster")
			return s.cached, nil
		}
		return nil, fmt.Errorf("list staff: %w", err)
	}

	roster := make([]StaffMember, 0, len(members))
	for _, m := range members {
		title, ok := s.titleFor(m.RoleIDs)
		if !ok {
			continue
		}
		name := m.Nickname
		if name == "" {
			name = m.Username
		}
		roster = append(roster, StaffMember{ID: m.ID, Name: name, AvatarURL: m.AvatarURL, Title: title})
	}

	s.cached = roster
	s.fetchedAt = s.now()
	return roster, nil
}

// titleFor walks the rules in declaration order and stops at the first group
// intersecting the member's roles.
func (s *RosterService) titleFor(roleIDs []string) (string, bool) {
	held := make(map[string]struct{}, len(roleIDs))
	for _, id := range roleIDs {
		held[id] = struct{}{}
	}
	for _, rule := range s.rules {
		for _, id := range rule.RoleIDs {
			if _, ok := held[id]; ok {
				return rule.Title, true
			}
		}
	}
	return "", false
}
