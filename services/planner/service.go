package planner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	itineraryRepo "tripplanner/database/repository/itinerary"
	"tripplanner/models"
	"tripplanner/services/crew"
	ai "tripplanner/services/intelligence"
	"tripplanner/services/research"
	"tripplanner/services/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PlannerService interface {
	// Plan validates req, runs the research-then-plan crew and stores the
	// result in the session's slot.
	Plan(ctx context.Context, sessionID string, req models.TripRequest) (*models.Itinerary, error)
	// Latest returns the session's stored itinerary, or nil.
	Latest(ctx context.Context, sessionID string) (*models.Itinerary, error)
}

type DefaultPlannerService struct {
	Provider      string
	Models        ai.ModelFactory
	Tools         research.ToolFactory
	Credentials   CredentialSource
	Sessions      session.Store
	Archive       itineraryRepo.ItineraryRepository // nil when archiving is disabled
	Timeout       time.Duration
	MaxIterations int
	Logger        *zap.Logger
	Now           func() time.Time
}

func (s *DefaultPlannerService) Plan(ctx context.Context, sessionID string, req models.TripRequest) (*models.Itinerary, error) {
	logger := s.logger().With(zap.String("session", sessionID))

	stay, err := Validate(req, s.now())
	if err != nil {
		return nil, err
	}

	creds := s.Credentials()
	if missing := creds.Missing(); len(missing) > 0 {
		logger.Warn("planning refused: missing credentials", zap.Strings("missing", missing))
		return nil, fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	llm, err := s.Models(ctx, creds.LLMKey)
	if err != nil {
		return nil, fmt.Errorf("init language model: %w", err)
	}
	// Gemini models hold a gRPC connection per run.
	if closer, ok := llm.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Warn("failed to close language model", zap.Error(err))
			}
		}()
	}
	var tools []crew.Tool
	if s.Tools != nil {
		tools = s.Tools(creds.SearchKey)
	}

	logger.Info("planning started",
		zap.String("destination", stay.Destination),
		zap.Int("days", stay.Days),
		zap.Int("people", stay.People),
		zap.Int("budget", stay.Budget),
	)
	started := time.Now()
	out, err := BuildCrew(stay, llm, tools, s.MaxIterations, logger).Kickoff(ctx)
	if err != nil {
		logger.Error("planning failed", zap.Error(err), zap.Duration("elapsed", time.Since(started)))
		return nil, fmt.Errorf("run travel planner: %w", err)
	}
	logger.Info("planning finished", zap.Duration("elapsed", time.Since(started)))

	it := &models.Itinerary{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		Destination: stay.Destination,
		People:      stay.People,
		Budget:      stay.Budget,
		CheckIn:     stay.CheckIn.Format(DateLayout),
		CheckOut:    stay.CheckOut.Format(DateLayout),
		Days:        stay.Days,
		Provider:    s.Provider,
		Result:      out.Raw,
		CreatedAt:   s.now(),
	}

	// The result is returned even if it cannot be kept.
	if s.Sessions != nil && sessionID != "" {
		if err := s.Sessions.Set(context.WithoutCancel(ctx), sessionID, it); err != nil {
			logger.Warn("failed to store itinerary in session", zap.Error(err))
		}
	}
	if s.Archive != nil {
		if _, err := s.Archive.Create(context.WithoutCancel(ctx), it); err != nil {
			logger.Warn("failed to archive itinerary", zap.Error(err), zap.String("id", it.ID))
		}
	}
	return it, nil
}

func (s *DefaultPlannerService) Latest(ctx context.Context, sessionID string) (*models.Itinerary, error) {
	if s.Sessions == nil || sessionID == "" {
		return nil, nil
	}
	return s.Sessions.Get(ctx, sessionID)
}

func (s *DefaultPlannerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultPlannerService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
