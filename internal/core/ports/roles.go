package ports

import (
	"context"
	"time"

	"github.com/majikku/community-api/internal/core/domain"
)

// GuildMember is a single member of the community guild as reported by the
// identity provider.
type GuildMember struct {
	ID        string
	Username  string
	Nickname  string
	AvatarURL string
	RoleIDs   []string
}

// RoleProvider is the external identity/role lookup. MemberRoles must report
// "not a guild member" as an empty role set, not an error; failed or timed out
// queries surface as domain.ErrIdentityLookup.
type RoleProvider interface {
	MemberRoles(ctx context.Context, actorID string) ([]string, error)
	ListMembers(ctx context.Context) ([]GuildMember, error)
}

// CapabilityCache stores resolved capability sets for a bounded duration so
// the external lookup is not repeated per request.
type CapabilityCache interface {
	Get(ctx context.Context, actorID string) (domain.CapabilitySet, bool, error)
	Set(ctx context.Context, actorID string, caps domain.CapabilitySet, ttl time.Duration) error
}

// RoleResolver maps an actor id to its capability snapshot.
type RoleResolver interface {
	// Resolve returns the capability set for actorID. A failed or empty
	// lookup yields the zero set together with domain.ErrIdentityLookup so
	// callers that audit can tell the cases apart; most callers ignore the
	// error and use the zero set.
	Resolve(ctx context.Context, actorID string) (domain.CapabilitySet, error)
}
