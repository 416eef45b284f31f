package recommend

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// DefaultPageSize is the number of recipes returned per recommendation.
const DefaultPageSize = 20

// Engine produces recommendation pages. It holds no per-request state and
// is safe for concurrent use when intn is.
type Engine struct {
	pageSize int
	intn     func(n int) int
}

// Config configures an Engine.
type Config struct {
	// PageSize bounds the number of recipes returned. Default 20.
	PageSize int
	// Intn returns a uniform value in [0, n). Default math/rand/v2.IntN.
	Intn func(n int) int
}

// NewEngine creates an Engine.
func NewEngine(cfg Config) *Engine {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Intn == nil {
		cfg.Intn = rand.IntN
	}
	return &Engine{pageSize: cfg.PageSize, intn: cfg.Intn}
}

// PageSize returns the configured page size.
func (e *Engine) PageSize() int {
	return e.pageSize
}

// WithPageSize returns a copy of e bounded to n items. n <= 0 keeps the
// current size.
func (e *Engine) WithPageSize(n int) *Engine {
	if n <= 0 || n == e.pageSize {
		return e
	}
	return &Engine{pageSize: n, intn: e.intn}
}

// DietCompatible reports whether a recipe with tags t suits profile p. A
// recipe without diet tags suits everyone, and a profile without diet
// preferences accepts every recipe.
func DietCompatible(t Tags, p Profile) bool {
	return t.Diet.Len() == 0 || p.Diets.Len() == 0 || t.Diet.Intersects(p.Diets)
}

// AllergenFree reports whether a recipe with tags t carries none of the
// profile's allergies.
func AllergenFree(t Tags, p Profile) bool {
	return !t.Allergens.Intersects(p.Allergies)
}

// Admissible is the diet and allergy prefilter.
func Admissible(t Tags, p Profile) bool {
	return DietCompatible(t, p) && AllergenFree(t, p)
}

// InferPreferences collects the categories and cuisine types of every pool
// item that received at least one positive rating.
func InferPreferences(pool []Item, ratings []Rating) (categories, cuisines LabelSet) {
	liked := make(map[uuid.UUID]struct{})
	for _, r := range ratings {
		if r.Positive() {
			liked[r.RecipeID] = struct{}{}
		}
	}

	categories, cuisines = LabelSet{}, LabelSet{}
	for _, it := range pool {
		if _, ok := liked[it.ID]; !ok {
			continue
		}
		categories.Merge(it.Tags.Categories)
		cuisines.Merge(it.Tags.CuisineTypes)
	}
	return categories, cuisines
}

// Filter splits the pool into the diet/allergy prefiltered items
// (filterPositive) and the subset that also matches a stated or inferred
// category or cuisine type (filterRecipes).
func Filter(pool []Item, p Profile, ratings []Rating) (filterRecipes, filterPositive []Item) {
	inferredCategories, inferredCuisines := InferPreferences(pool, ratings)
	wantCategories := p.Categories.Union(inferredCategories)
	wantCuisines := p.CuisineTypes.Union(inferredCuisines)

	for _, it := range pool {
		if !Admissible(it.Tags, p) {
			continue
		}
		filterPositive = append(filterPositive, it)
		if it.Tags.Categories.Intersects(wantCategories) || it.Tags.CuisineTypes.Intersects(wantCuisines) {
			filterRecipes = append(filterRecipes, it)
		}
	}
	return filterRecipes, filterPositive
}

// Recommend returns up to PageSize items for profile p. Ratings outside the
// pool are ignored. An empty pool yields an empty result.
func (e *Engine) Recommend(pool []Item, p Profile, ratings []Rating) Result {
	if len(pool) == 0 {
		return Result{Items: []Item{}}
	}

	filterRecipes, filterPositive := Filter(pool, p, ratings)
	if len(filterRecipes) == 0 && len(filterPositive) == 0 {
		return Result{
			Items:    Sample(pool, e.pageSize, e.intn),
			Fallback: true,
		}
	}

	matched := make([]Item, 0, len(filterRecipes)+len(filterPositive))
	matched = append(matched, filterRecipes...)
	matched = append(matched, filterPositive...)
	matched = types.DedupeBy(matched, func(it Item) uuid.UUID { return it.ID })

	return Result{
		Items:   Sample(matched, e.pageSize, e.intn),
		Matched: len(matched),
	}
}
