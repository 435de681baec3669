package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	JWTSecret  string        `env:"JWT_SECRET"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`

	Discord DiscordConfig
	Roles   RolesConfig
	Cache   CacheConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// DiscordConfig holds the OAuth application, guild, and webhook settings.
type DiscordConfig struct {
	ClientID           string `env:"DISCORD_CLIENT_ID"`
	ClientSecret       string `env:"DISCORD_CLIENT_SECRET"`
	RedirectURI        string `env:"DISCORD_REDIRECT_URI, default=http://127.0.0.1:8080/auth/callback"`
	BotToken           string `env:"DISCORD_BOT_TOKEN"`
	GuildID            string `env:"DISCORD_GUILD_ID"`
	ReviewWebhook      string `env:"DISCORD_REVIEW_WEBHOOK_URL"`
	ApplicationWebhook string `env:"DISCORD_APPLICATION_WEBHOOK_URL"`
	AppealWebhook      string `env:"DISCORD_APPEAL_WEBHOOK_URL"`
}

// RolesConfig maps capability flags to Discord role-id groups. Comma-separated
// lists; groups should be disjoint but overlap is tolerated (both flags set).
type RolesConfig struct {
	AdminRoleIDs       []string `env:"ADMIN_ROLE_IDS"`
	CoordinatorRoleIDs []string `env:"COORDINATOR_ROLE_IDS"`
	StorytellerRoleIDs []string `env:"STORYTELLER_ROLE_IDS"`
	WikiLeadRoleIDs    []string `env:"WIKI_LEAD_ROLE_IDS"`
	WikiEditorRoleIDs  []string `env:"WIKI_EDITOR_ROLE_IDS"`
}

// CacheConfig bounds how stale resolved roles and the staff roster may get. A
// role revoked mid-session stays effective until the cache entry expires or
// the user logs in again; that staleness window is this configuration.
type CacheConfig struct {
	CapabilityTTL time.Duration `env:"CAPABILITY_CACHE_TTL, default=5m"`
	RosterTTL     time.Duration `env:"ROSTER_CACHE_TTL,     default=5m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=majikku"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
