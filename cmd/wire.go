package cmd

import (
	"context"
	"fmt"

	"tripplanner/config"
	"tripplanner/database"
	itineraryRepo "tripplanner/database/repository/itinerary"
	ai "tripplanner/services/intelligence"
	"tripplanner/services/planner"
	"tripplanner/services/research"
	"tripplanner/services/session"
	"tripplanner/utils"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// backends are the optional stores a planner is wired to.
type backends struct {
	archive itineraryRepo.ItineraryRepository
}

// close releases every connection opened by connectBackends.
func (b *backends) close(logger *zap.Logger) {
	for _, client := range utils.RedisClients() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	if database.MongoClient != nil {
		if err := database.MongoClient.Disconnect(context.Background()); err != nil {
			logger.Warn("failed to disconnect MongoDB", zap.Error(err))
		}
	}
}

func connectBackends(ctx context.Context, cfg config.Config, logger *zap.Logger) (*backends, error) {
	b := &backends{}
	if err := utils.InitRedis(); err != nil {
		// The cache client may already be connected.
		b.close(logger)
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if cfg.ArchiveEnabled {
		client, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			b.close(logger)
			return nil, err
		}
		repo, err := itineraryRepo.NewMongoItineraryRepo(client, cfg.DatabaseName)
		if err != nil {
			b.close(logger)
			return nil, fmt.Errorf("init itinerary archive: %w", err)
		}
		b.archive = repo
		logger.Info("itinerary archive enabled", zap.String("database", cfg.DatabaseName))
	}
	return b, nil
}

// newPlanner assembles the planner service from configuration.
func newPlanner(cfg config.Config, b *backends, logger *zap.Logger) (*planner.DefaultPlannerService, error) {
	modelName := cfg.OpenAIModel
	if cfg.LLMProvider == ai.ProviderGemini {
		modelName = cfg.GeminiModel
	}
	models, err := ai.NewModelFactory(cfg.LLMProvider, modelName)
	if err != nil {
		return nil, err
	}

	var cache research.Cache
	var sessions session.Store
	if utils.CacheClient != nil {
		cache = research.NewRedisCache(utils.CacheClient, cfg.SearchCacheTTL())
	}
	if utils.SessionClient != nil {
		sessions = session.NewRedisStore(utils.SessionClient, cfg.SessionTTL())
	} else {
		sessions = session.NewMemoryStore(cfg.SessionTTL())
	}

	svc := &planner.DefaultPlannerService{
		Provider:      cfg.LLMProvider + "/" + modelName,
		Models:        models,
		Tools:         research.NewToolFactory(cfg.SearchResults, cache, logger),
		Credentials:   planner.EnvCredentials(viper.GetViper(), cfg.LLMProvider),
		Sessions:      sessions,
		Timeout:       cfg.AgentTimeout(),
		MaxIterations: cfg.AgentMaxIterations,
		Logger:        logger,
	}
	if b != nil && b.archive != nil {
		svc.Archive = b.archive
	}
	return svc, nil
}
