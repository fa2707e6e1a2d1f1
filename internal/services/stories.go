package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"fyno/internal/domain"
	"fyno/internal/logging"
	"fyno/internal/metrics"
)

// StoryService serves client stories, reading through the cache when one is
// configured. Cache problems never fail a request.
type StoryService struct {
	store  StoryStore
	cache  StoryCache
	logger *logging.Logger
}

// NewStoryService creates a story service. cache may be nil.
func NewStoryService(store StoryStore, cache StoryCache, logger *logging.Logger) *StoryService {
	return &StoryService{store: store, cache: cache, logger: logger.Named("stories")}
}

// List returns every story in seed order.
func (s *StoryService) List(ctx context.Context) ([]*StoryResult, error) {
	ctx, span := tracer.Start(ctx, "stories.list")
	defer span.End()
	log := s.logger.Ctx(ctx)

	var (
		gen      int64
		writable bool
	)
	if s.cache != nil {
		stories, g, ok, err := s.cache.Get(ctx)
		gen, writable = g, err == nil
		switch {
		case err != nil:
			metrics.RecordStoryCache("error")
			log.Warn("story cache read failed", "error", err)
		case ok:
			metrics.RecordStoryCache("hit")
			span.SetAttributes(attribute.Bool("fyno.cache_hit", true))
			return toStoryResults(stories), nil
		default:
			metrics.RecordStoryCache("miss")
		}
	}

	stories, err := s.store.ListStories(ctx)
	if err != nil {
		log.Error("failed to list client stories", "error", err)
		return nil, storageFailure(span, "stories", err)
	}

	if writable {
		if err := s.cache.Set(ctx, gen, stories); err != nil {
			log.Warn("story cache write failed", "error", err)
		}
	}

	span.SetAttributes(attribute.Int("fyno.story_count", len(stories)))
	return toStoryResults(stories), nil
}

// Seed loads stories into an empty store, or replaces every stored story when
// replace is set. The cache is dropped whenever rows are written.
func (s *StoryService) Seed(ctx context.Context, stories []domain.ClientStory, replace bool) (int, error) {
	ctx, span := tracer.Start(ctx, "stories.seed")
	defer span.End()

	var n int
	var err error
	if replace {
		n, err = s.store.ReplaceStories(ctx, stories)
	} else {
		n, err = s.store.SeedStories(ctx, stories)
	}
	if err != nil {
		return 0, storageFailure(span, "seed_stories", err)
	}

	if (n > 0 || replace) && s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("story cache invalidation failed", "error", err)
		}
	}
	s.logger.Info("client stories seeded", "inserted", n, "replace", replace)
	return n, nil
}

func toStoryResults(stories []domain.ClientStory) []*StoryResult {
	results := make([]*StoryResult, len(stories))
	for i, st := range stories {
		results[i] = &StoryResult{
			ID:             st.ID,
			FounderName:    st.FounderName,
			Company:        st.Company,
			Challenge:      st.Challenge,
			TurningPoint:   st.TurningPoint,
			Transformation: st.Transformation,
			ServiceUsed:    st.ServiceUsed,
		}
	}
	return results
}
