package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/majikku/community-api/internal/core/domain"
	"github.com/majikku/community-api/internal/core/ports"
)

const defaultCapabilityTTL = 5 * time.Minute

// RoleGroups holds the configured Discord role-id groups backing each
// capability flag. Groups are disjoint by configuration but this is not
// enforced: an id listed in two groups yields two simultaneous flags.
type RoleGroups struct {
	Admin       []string
	Coordinator []string
	Storyteller []string
	WikiLead    []string
	WikiEditor  []string
}

// Capabilities computes the capability snapshot for a role-id set: each flag
// is true iff the actor's roles intersect that group non-emptily.
func (g RoleGroups) Capabilities(roleIDs []string) domain.CapabilitySet {
	held := make(map[string]struct{}, len(roleIDs))
	for _, id := range roleIDs {
		held[id] = struct{}{}
	}
	intersects := func(group []string) bool {
		for _, id := range group {
			if _, ok := held[id]; ok {
				return true
			}
		}
		return false
	}
	return domain.CapabilitySet{
		Admin:       intersects(g.Admin),
		Coordinator: intersects(g.Coordinator),
		Storyteller: intersects(g.Storyteller),
		WikiLead:    intersects(g.WikiLead),
		WikiEditor:  intersects(g.WikiEditor),
	}
}

// RoleService resolves capability snapshots from the identity provider,
// caching results so the external lookup is not repeated per request.
type RoleService struct {
	provider ports.RoleProvider
	cache    ports.CapabilityCache
	groups   RoleGroups
	ttl      time.Duration
	log      zerolog.Logger
}

// NewRoleService returns a RoleService. If ttl <= 0, a 5-minute default is
// used.
func NewRoleService(provider ports.RoleProvider, cache ports.CapabilityCache, groups RoleGroups, ttl time.Duration, log zerolog.Logger) *RoleService {
	if ttl <= 0 {
		ttl = defaultCapabilityTTL
	}
	return &RoleService{provider: provider, cache: cache, groups: groups, ttl: ttl, log: log}
}

// Resolve returns the capability set for actorID. On a failed lookup it
// returns the zero set together with a domain.ErrIdentityLookup-wrapped error;
// callers that only need flags can use the zero set and ignore the error.
func (s *RoleService) Resolve(ctx context.Context, actorID string) (domain.CapabilitySet, error) {
	if s.cache != nil {
		caps, hit, err := s.cache.Get(ctx, actorID)
		if err != nil {
			s.log.Warn().Err(err).Str("actor_id", actorID).Msg("capability cache read failed")
		} else if hit {
			return caps, nil
		}
	}

	roleIDs, err := s.provider.MemberRoles(ctx, actorID)
	if err != nil {
		// Degrade to zero capabilities; never cache a failed lookup.
		return domain.CapabilitySet{}, fmt.Errorf("resolve capabilities: %w", err)
	}

	caps := s.groups.Capabilities(roleIDs)
	if s.cache != nil {
		if err := s.cache.Set(ctx, actorID, caps, s.ttl); err != nil {
			s.log.Warn().Err(err).Str("actor_id", actorID).Msg("capability cache write failed")
		}
	}
	return caps, nil
}
