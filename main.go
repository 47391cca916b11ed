package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/docforge/docforge-engine/pkg/config"
	"github.com/docforge/docforge-engine/pkg/database"
	"github.com/docforge/docforge-engine/pkg/graph"
	"github.com/docforge/docforge-engine/pkg/handlers"
	"github.com/docforge/docforge-engine/pkg/middleware"
	"github.com/docforge/docforge-engine/pkg/objectstore"
	"github.com/docforge/docforge-engine/pkg/repositories"
	"github.com/docforge/docforge-engine/pkg/search"
	"github.com/docforge/docforge-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.Env == "local" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("database", cfg.Database.Host),
		zap.String("redis", cfg.Redis.Addr()))

	ctx := context.Background()

	// Migrations run over database/sql; the pool below is pgx-native.
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open database for migrations", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	_ = sqlDB.Close()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if redisClient == nil {
		logger.Fatal("Redis is required for document body storage; set redis.host")
	}

	// Stores
	graphStore := graph.NewPostgresStore()
	bodyStore := objectstore.NewRedisStore(redisClient)
	searchProvider := search.NewPostgresProvider()

	// Repositories
	documentRepo := repositories.NewDocumentRepository(graphStore)
	conceptRepo := repositories.NewConceptRepository(graphStore)
	pageRepo := repositories.NewPageRepository(graphStore)
	versionRepo := repositories.NewVersionRepository(graphStore)
	tagRepo := repositories.NewTagRepository(graphStore)

	// Services
	documentService := services.NewDocumentService(documentRepo, bodyStore, graphStore, logger)
	conceptService := services.NewConceptService(conceptRepo, logger)
	relationshipService := services.NewRelationshipService(graphStore, conceptRepo, cfg.Relationships.MaxTraversalDepth, logger)
	navigationService := services.NewNavigationService(pageRepo, versionRepo, cfg.Navigation.MaxDepth, logger)
	impactService := services.NewImpactService(graphStore, conceptRepo, documentRepo, logger)
	searchService := services.NewSearchService(searchProvider, cfg.Search.DefaultLimit, cfg.Search.MaxLimit, logger)
	versionService := services.NewVersionService(versionRepo, logger)
	pageService := services.NewPageService(pageRepo, versionRepo, documentRepo, logger)
	tagService := services.NewTagService(tagRepo, graphStore, logger)

	mux := http.NewServeMux()
	teamMiddleware := handlers.TeamMiddleware(database.WithTeamContext(db, logger))

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewDocumentHandler(documentService, logger).RegisterRoutes(mux, teamMiddleware)
	handlers.NewConceptHandler(conceptService, impactService, logger).RegisterRoutes(mux, teamMiddleware)
	handlers.NewRelationshipHandler(relationshipService, logger).RegisterRoutes(mux, teamMiddleware)
	handlers.NewPageHandler(pageService, navigationService, logger).RegisterRoutes(mux, teamMiddleware)
	handlers.NewVersionHandler(versionService, logger).RegisterRoutes(mux, teamMiddleware)
	handlers.NewTagHandler(tagService, logger).RegisterRoutes(mux, teamMiddleware)
	handlers.NewSearchHandler(searchService, logger).RegisterRoutes(mux, teamMiddleware)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting docforge-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
