package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/applianceiq/consumables-engine/pkg/apperrors"
	"github.com/applianceiq/consumables-engine/pkg/config"
	"github.com/applianceiq/consumables-engine/pkg/models"
	"github.com/applianceiq/consumables-engine/pkg/repositories"
)

// SuggestService ranks model number suggestions for a partial query.
//
// Suggestions come from two tiers. The substring tier holds every model whose
// lowercased model number contains the query; it always ranks first. When the
// substring tier leaves room under the limit, the similarity tier fills the
// remainder with trigram matches at or above the configured cutoff, ranked by
// descending similarity. The tiers are disjoint, so the merged list never
// repeats a model.
type SuggestService interface {
	// Suggest returns up to limit suggestions for the query. Queries shorter
	// than the configured minimum return an empty list; a non-positive limit
	// returns apperrors.ErrInvalidParameter; limits above the configured
	// maximum are clamped.
	Suggest(ctx context.Context, query string, limit int) ([]*models.Suggestion, error)
}

type suggestService struct {
	catalogRepo repositories.CatalogRepository
	cache       SuggestionCache
	search      *config.SearchConfig
	logger      *zap.Logger
}

// NewSuggestService creates a new SuggestService. cache may be nil, which
// disables suggestion caching.
func NewSuggestService(
	catalogRepo repositories.CatalogRepository,
	cache SuggestionCache,
	search *config.SearchConfig,
	logger *zap.Logger,
) SuggestService {
	return &suggestService{
		catalogRepo: catalogRepo,
		cache:       cache,
		search:      search,
		logger:      logger.Named("suggest-service"),
	}
}

var _ SuggestService = (*suggestService)(nil)

func (s *suggestService) Suggest(ctx context.Context, query string, limit int) ([]*models.Suggestion, error) {
	if limit <= 0 {
		return nil, apperrors.ErrInvalidParameter
	}
	if limit > s.search.MaxLimit {
		limit = s.search.MaxLimit
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < s.search.MinQueryLength {
		return []*models.Suggestion{}, nil
	}

	key := suggestionCacheKey(q, limit)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	suggestions, err := s.catalogRepo.SubstringSuggestions(ctx, q, limit)
	if err != nil {
		s.logger.Error("Failed to query substring suggestions",
			zap.String("query", q),
			zap.Error(err))
		return nil, apperrors.ErrStoreUnavailable
	}

	// Only consult the similarity tier when the substring tier left room.
	if remaining := limit - len(suggestions); remaining > 0 {
		similar, err := s.catalogRepo.SimilaritySuggestions(ctx, q, s.search.SimilarityCutoff, remaining)
		if err != nil {
			s.logger.Error("Failed to query similarity suggestions",
				zap.String("query", q),
				zap.Error(err))
			return nil, apperrors.ErrStoreUnavailable
		}
		suggestions = append(suggestions, similar...)
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, suggestions)
	}

	return suggestions, nil
}
