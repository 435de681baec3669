package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/majikku/community-api/internal/api"
	"github.com/majikku/community-api/internal/core/service"
	"github.com/majikku/community-api/internal/infrastructure/config"
	mongodb "github.com/majikku/community-api/internal/infrastructure/db/mongo"
	redisdb "github.com/majikku/community-api/internal/infrastructure/db/redis"
	"github.com/majikku/community-api/internal/infrastructure/discord"
	"github.com/majikku/community-api/internal/infrastructure/queue"
	"github.com/majikku/community-api/pkg/logger"
)

// @title        Majikku Community API
// @version      1.0
// @description  Community backend for the Majikku game server.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	wikiRepo := mongodb.NewWikiRepository(db)
	announcementRepo := mongodb.NewAnnouncementRepository(db)
	if err := wikiRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("wiki index creation failed")
	}
	if err := announcementRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("announcement index creation failed")
	}

	// --- Discord ---
	discordClient := discord.NewClient(discord.Config{
		ClientID:     cfg.Discord.ClientID,
		ClientSecret: cfg.Discord.ClientSecret,
		RedirectURI:  cfg.Discord.RedirectURI,
		BotToken:     cfg.Discord.BotToken,
		GuildID:      cfg.Discord.GuildID,
	}, log)

	webhooks := discord.NewWebhookNotifier(discord.WebhookConfig{
		ReviewURL:      cfg.Discord.ReviewWebhook,
		ApplicationURL: cfg.Discord.ApplicationWebhook,
		AppealURL:      cfg.Discord.AppealWebhook,
	}, log)

	dispatcher := queue.NewNotificationDispatcher(webhooks, webhooks, 0, log)
	dispatcher.Start(ctx)

	// --- Core services ---
	roleService := service.NewRoleService(
		discordClient,
		redisdb.NewCapabilityCache(rdb),
		service.RoleGroups{
			Admin:       cfg.Roles.AdminRoleIDs,
			Coordinator: cfg.Roles.CoordinatorRoleIDs,
			Storyteller: cfg.Roles.StorytellerRoleIDs,
			WikiLead:    cfg.Roles.WikiLeadRoleIDs,
			WikiEditor:  cfg.Roles.WikiEditorRoleIDs,
		},
		cfg.Cache.CapabilityTTL,
		log,
	)

	rosterService := service.NewRosterService(
		discordClient,
		staffTitleRules(cfg.Roles),
		cfg.Cache.RosterTTL,
		nil,
		log,
	)

	deps := api.Deps{
		OAuth:         discordClient,
		RoleResolver:  roleService,
		Wiki:          service.NewWikiService(wikiRepo, dispatcher, log),
		Announcements: service.NewAnnouncementService(announcementRepo, log),
		Reports:       service.NewReportService(dispatcher, log),
		Roster:        rosterService,
		Mongo:         db,
		Redis:         rdb,
		JWTSecret:     cfg.JWTSecret,
		SessionTTL:    cfg.SessionTTL,
		Logger:        log,
	}

	e := api.NewRouter(deps)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		_ = e.Shutdown(context.Background())
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("majikku community api listening")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Info().Err(err).Msg("server stopped")
	}
}

// staffTitleRules orders the roster titles by seniority; the first matching
// group wins when a member holds roles from several.
func staffTitleRules(roles config.RolesConfig) []service.TitleRule {
	return []service.TitleRule{
		{RoleIDs: roles.AdminRoleIDs, Title: "Administrator"},
		{RoleIDs: roles.CoordinatorRoleIDs, Title: "Event Coordinator"},
		{RoleIDs: roles.StorytellerRoleIDs, Title: "Storyteller"},
		{RoleIDs: roles.WikiLeadRoleIDs, Title: "Wiki Lead"},
		{RoleIDs: roles.WikiEditorRoleIDs, Title: "Wiki Editor"},
	}
}
