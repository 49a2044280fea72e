package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pathwise/compass/internal/config"
	"github.com/pathwise/compass/internal/infrastructure/groq"
	"github.com/pathwise/compass/internal/infrastructure/perplexity"
	"github.com/pathwise/compass/internal/infrastructure/redis"
	"github.com/pathwise/compass/internal/services/catalog"
	"github.com/pathwise/compass/internal/services/conversation"
	"github.com/pathwise/compass/internal/services/orchestrator"
	"github.com/pathwise/compass/internal/services/router"
	"github.com/pathwise/compass/internal/services/transcription"
	"github.com/rs/zerolog/log"
)

type Services struct {
	groqService          *groq.Service
	perplexityService    *perplexity.Service
	redisService         *redis.Service
	catalogService       *catalog.Catalog
	routerService        *router.Service
	conversationStore    conversation.Store
	orchestratorService  *orchestrator.Service
	transcriptionService *transcription.Service
}

// InitializeServices wires all services. The Groq gateway is required and
// fails startup when unconfigured; Perplexity and Redis are optional.
func InitializeServices() (*Services, error) {
	log.Info().Msg("Initializing core services")

	groqService := groq.NewService()
	perplexityService := perplexity.NewService()
	redisService := redis.NewService()
	if redisService != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisService.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis is configured but not reachable")
		} else {
			log.Info().Msg("Redis connection verified")
		}
		cancel()
	}

	catalogService, err := catalog.Load(config.GetSalaryDataPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt catalog: %w", err)
	}

	store, err := newConversationStore(redisService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise conversation store: %w", err)
	}

	routerService := router.NewService(groqService)
	orchestratorService := orchestrator.NewService(groqService, routerService, catalogService, store)
	transcriptionService := transcription.NewService(groqService, config.GetMaxUploadBytes())

	log.Info().Msg("All services initialized successfully")

	return &Services{
		groqService:          groqService,
		perplexityService:    perplexityService,
		redisService:         redisService,
		catalogService:       catalogService,
		routerService:        routerService,
		conversationStore:    store,
		orchestratorService:  orchestratorService,
		transcriptionService: transcriptionService,
	}, nil
}

func newConversationStore(redisService *redis.Service) (conversation.Store, error) {
	backend := config.GetHistoryBackend()
	switch backend {
	case "redis":
		if redisService == nil {
			return nil, fmt.Errorf("CHAT_HISTORY_BACKEND=redis requires REDIS_URL")
		}
		log.Info().Msg("Using Redis conversation store")
		return conversation.NewRedisStore(redisService, config.GetHistoryTTL()), nil
	case "sqlite":
		log.Info().Str("path", config.GetHistorySQLitePath()).Msg("Using SQLite conversation store")
		return conversation.NewSQLiteStore(config.GetHistorySQLitePath())
	case "memory":
		log.Info().Int("max_turns", config.GetHistoryMaxTurns()).Msg("Using in-memory conversation store")
		return conversation.NewMemoryStore(config.GetHistoryMaxTurns()), nil
	default:
		return nil, fmt.Errorf("unknown CHAT_HISTORY_BACKEND %q", backend)
	}
}

// GetOrchestratorService returns the orchestrator
func (s *Services) GetOrchestratorService() *orchestrator.Service {
	return s.orchestratorService
}

// GetTranscriptionService returns the transcription service
func (s *Services) GetTranscriptionService() *transcription.Service {
	return s.transcriptionService
}

// GetPerplexityService returns the search adapter, nil when unconfigured
func (s *Services) GetPerplexityService() *perplexity.Service {
	return s.perplexityService
}

// GetConversationStore returns the conversation store
func (s *Services) GetConversationStore() conversation.Store {
	return s.conversationStore
}

// Close releases held connections.
func (s *Services) Close() {
	if s.redisService != nil {
		if err := s.redisService.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis connection")
		}
	}
	if closer, ok := s.conversationStore.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close conversation store")
		}
	}
}
