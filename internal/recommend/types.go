package recommend

import "github.com/google/uuid"

// Tags are the four classification sets carried by a recipe.
type Tags struct {
	Diet         LabelSet
	Categories   LabelSet
	CuisineTypes LabelSet
	Allergens    LabelSet
}

// Item is a candidate recipe as seen by the engine.
type Item struct {
	ID   uuid.UUID
	Tags Tags
}

// Profile is the part of a user the engine reads.
type Profile struct {
	Diets        LabelSet
	Categories   LabelSet
	CuisineTypes LabelSet
	Allergies    LabelSet
}

// Rating is one user's star rating of a recipe.
type Rating struct {
	RecipeID uuid.UUID
	Stars    int
}

// PositiveThreshold is the star value a rating must exceed to count as
// positive.
const PositiveThreshold = 2

// Positive reports whether the rating counts as a positive signal.
func (r Rating) Positive() bool {
	return r.Stars > PositiveThreshold
}

// Result is the outcome of a recommendation request.
type Result struct {
	Items []Item
	// Fallback is set when no recipe matched the profile and Items were
	// drawn from the whole candidate pool.
	Fallback bool
	// Matched is the size of the de-duplicated matched pool.
	Matched int
}
