package models

// All lists every model managed by migrations, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Recipe{},
		&RecipeIngredient{},
		&Star{},
		&Book{},
		&BookRecipe{},
	}
}
