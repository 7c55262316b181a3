package importer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"recipe-catalog/domain"
	"recipe-catalog/internal/testutil"
	"recipe-catalog/pkg/importer"
	"recipe-catalog/pkg/metrics"
	"recipe-catalog/pkg/recipe"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func recipeFixture(id int64, name string) domain.Recipe {
	return domain.Recipe{
		ID:           id,
		Name:         name,
		Ingredients:  []string{"rice", "egg"},
		Instructions: []string{"boil", "fry", "serve"},
		Cuisine:      "Asian",
		Tags:         []string{"Quick"},
		MealType:     []string{"Lunch"},
	}
}

func serveJSON(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func servePayload(t *testing.T, recipes ...domain.Recipe) *httptest.Server {
	t.Helper()
	body, err := json.Marshal(domain.ExternalRecipesResponse{
		Recipes: recipes,
		Total:   len(recipes),
		Limit:   len(recipes),
	})
	require.NoError(t, err)
	return serveJSON(t, http.StatusOK, string(body))
}

func newImporter(t *testing.T, url string) (importer.ImporterService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	svc := importer.NewImporterService(recipe.NewRecipeRepository(db), importer.NewHTTPClient(5*time.Second), url)
	return svc, db
}

func countRecipes(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	n, err := recipe.NewRecipeRepository(db).CountRecipes(context.Background())
	require.NoError(t, err)
	return n
}

func TestLoadRecipes(t *testing.T) {
	srv := servePayload(t, recipeFixture(1, "Fried Rice"), recipeFixture(2, "Congee"), recipeFixture(3, "Omurice"))
	svc, db := newImporter(t, srv.URL)
	loadedBefore := promtestutil.ToFloat64(metrics.ImportRunCounter.WithLabelValues(string(domain.ImportStatusLoaded)))

	res := svc.LoadRecipes(context.Background())

	assert.Equal(t, domain.ImportStatusLoaded, res.Status)
	assert.Equal(t, 3, res.Loaded)
	assert.Equal(t, "Successfully loaded 3 recipes into the DB.", res.Message)
	assert.Equal(t, int64(3), countRecipes(t, db))
	for _, id := range []int64{1, 2, 3} {
		assert.Equal(t, map[string]int64{
			"ingredients":  2,
			"instructions": 3,
			"tags":         1,
			"meal_types":   1,
		}, testutil.CountChildren(t, db, id))
	}
	assert.Equal(t, loadedBefore+1, promtestutil.ToFloat64(metrics.ImportRunCounter.WithLabelValues(string(domain.ImportStatusLoaded))))
}

func TestLoadRecipesAcceptsAny2xx(t *testing.T) {
	body, err := json.Marshal(domain.ExternalRecipesResponse{Recipes: []domain.Recipe{recipeFixture(1, "Fried Rice")}})
	require.NoError(t, err)
	srv := serveJSON(t, http.StatusNonAuthoritativeInfo, string(body))
	svc, db := newImporter(t, srv.URL)

	res := svc.LoadRecipes(context.Background())

	assert.Equal(t, domain.ImportStatusLoaded, res.Status)
	assert.Equal(t, int64(1), countRecipes(t, db))
}

func TestLoadRecipesEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty list", body: `{"recipes":[],"total":0,"skip":0,"limit":0}`},
		{name: "missing list", body: `{"total":0}`},
		{name: "null document", body: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveJSON(t, http.StatusOK, tt.body)
			svc, db := newImporter(t, srv.URL)

			res := svc.LoadRecipes(context.Background())

			assert.Equal(t, domain.ImportStatusEmpty, res.Status)
			assert.Equal(t, "No data found from API.", res.Message)
			assert.Zero(t, res.Loaded)
			assert.Zero(t, countRecipes(t, db))
		})
	}
}

func TestLoadRecipesFetchFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "malformed json", status: http.StatusOK, body: `{"recipes": [`},
		{name: "wrong shape", status: http.StatusOK, body: `{"recipes": "nope"}`},
		{name: "empty body", status: http.StatusOK, body: ``},
		{name: "upstream error", status: http.StatusInternalServerError, body: `{"message":"boom"}`},
		{name: "not found with valid payload", status: http.StatusNotFound, body: `{"recipes":[{"id":1,"name":"Fried Rice"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveJSON(t, tt.status, tt.body)
			svc, db := newImporter(t, srv.URL)

			res := svc.LoadRecipes(context.Background())

			assert.Equal(t, domain.ImportStatusFailed, res.Status)
			assert.Contains(t, res.Message, "Error loading data: ")
			assert.Zero(t, res.Loaded)
			assert.Zero(t, countRecipes(t, db))
		})
	}
}

func TestLoadRecipesUnreachableSource(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	svc, _ := newImporter(t, url)
	res := svc.LoadRecipes(context.Background())

	assert.Equal(t, domain.ImportStatusFailed, res.Status)
}

func TestLoadRecipesDuplicateKeepsPrefix(t *testing.T) {
	srv := servePayload(t,
		recipeFixture(1, "Fried Rice"),
		recipeFixture(2, "Congee"),
		recipeFixture(1, "Fried Rice Again"),
		recipeFixture(4, "Never Stored"),
	)
	svc, db := newImporter(t, srv.URL)

	res := svc.LoadRecipes(context.Background())

	assert.Equal(t, domain.ImportStatusFailed, res.Status)
	assert.Equal(t, 2, res.Loaded)
	assert.Equal(t, int64(2), countRecipes(t, db))
	assert.Equal(t, int64(2), testutil.CountChildren(t, db, 1)["ingredients"])
	assert.Zero(t, testutil.CountChildren(t, db, 4)["ingredients"])
}

func TestLoadRecipesTwiceFails(t *testing.T) {
	srv := servePayload(t, recipeFixture(1, "Fried Rice"))
	svc, db := newImporter(t, srv.URL)

	require.Equal(t, domain.ImportStatusLoaded, svc.LoadRecipes(context.Background()).Status)
	res := svc.LoadRecipes(context.Background())

	assert.Equal(t, domain.ImportStatusFailed, res.Status)
	assert.Zero(t, res.Loaded)
	assert.Equal(t, int64(1), countRecipes(t, db))
}

func TestLoadRecipesInvalidID(t *testing.T) {
	srv := servePayload(t, recipeFixture(5, "Okay"), recipeFixture(0, "No id"))
	svc, db := newImporter(t, srv.URL)

	res := svc.LoadRecipes(context.Background())

	assert.Equal(t, domain.ImportStatusFailed, res.Status)
	assert.Equal(t, 1, res.Loaded)
	assert.Contains(t, res.Message, importer.ErrInvalidRecipes.Error())
	assert.Equal(t, int64(1), countRecipes(t, db))
}
