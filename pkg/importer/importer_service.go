package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"recipe-catalog/domain"
	"recipe-catalog/pkg/logger"
	"recipe-catalog/pkg/metrics"
	"recipe-catalog/pkg/recipe"
	"time"

	"go.uber.org/zap"
)

// maxBodySize bounds the upstream document read into memory.
const maxBodySize = 32 << 20

var (
	ErrEmptyBody      = errors.New("empty response body")
	ErrInvalidRecipes = errors.New("recipe with non-positive id")
)

type (
	ImporterService interface {
		LoadRecipes(ctx context.Context) domain.ImportResult
	}

	importerService struct {
		recipeRepository recipe.RecipeRepository
		httpClient       *http.Client
		sourceURL        string
	}
)

func NewImporterService(recipeRepository recipe.RecipeRepository, httpClient *http.Client, sourceURL string) ImporterService {
	return &importerService{
		recipeRepository: recipeRepository,
		httpClient:       httpClient,
		sourceURL:        sourceURL,
	}
}

func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// LoadRecipes fetches the upstream catalog and stores each recipe in its own
// transaction, in the order received. A failure stops the run and leaves the
// already stored recipes in place.
func (s *importerService) LoadRecipes(ctx context.Context) domain.ImportResult {
	log := logger.FromContext(ctx).With(zap.String("source", s.sourceURL))
	start := time.Now()

	payload, err := s.fetch(ctx)
	if err != nil {
		log.Error("failed to fetch recipes", zap.Error(err))
		return s.finish(domain.ImportFailed(0, err))
	}

	if payload == nil || len(payload.Recipes) == 0 {
		log.Warn("source returned no recipes")
		return s.finish(domain.ImportEmpty())
	}

	for i, r := range payload.Recipes {
		if r.ID <= 0 {
			err := fmt.Errorf("%w at position %d", ErrInvalidRecipes, i)
			log.Error("invalid recipe in payload", zap.Error(err), zap.Int("stored", i))
			return s.finish(domain.ImportFailed(i, err))
		}

		if err := s.recipeRepository.CreateRecipe(ctx, recipe.ToEntity(r)); err != nil {
			log.Error("failed to store recipe",
				zap.Int64("recipe_id", r.ID),
				zap.Int("stored", i),
				zap.Error(err),
			)
			return s.finish(domain.ImportFailed(i, fmt.Errorf("save recipe %d: %w", r.ID, err)))
		}
	}

	log.Info("recipes imported",
		zap.Int("count", len(payload.Recipes)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return s.finish(domain.ImportLoaded(len(payload.Recipes)))
}

func (s *importerService) finish(res domain.ImportResult) domain.ImportResult {
	metrics.RecordImport(string(res.Status), res.Loaded)
	return res
}

func (s *importerService) fetch(ctx context.Context) (*domain.ExternalRecipesResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.sourceURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("source responded %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}

	var payload *domain.ExternalRecipesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return payload, nil
}
