package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pageza/recipe-feeds/backend/internal/api"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

type seedUser struct {
	username   string
	diets      []string
	categories []string
	allergies  []string
}

var seedUsers = []seedUser{
	{username: "ada", diets: []string{"vegan"}, categories: []string{"soup"}},
	{username: "grace", categories: []string{"dessert"}, allergies: []string{"peanut"}},
	{username: "linus"},
}

type dish struct {
	title       string
	category    string
	cuisine     string
	diet        []string
	allergens   []string
	ingredients []string
}

var dishes = []dish{
	{"Lentil Soup", "soup", "turkish", []string{"vegan"}, nil, []string{"lentils", "onion", "cumin"}},
	{"Pad Thai", "noodles", "thai", nil, []string{"peanut", "egg"}, []string{"rice noodles", "peanut", "egg", "tamarind"}},
	{"Margherita Pizza", "pizza", "italian", []string{"vegetarian"}, []string{"gluten", "dairy"}, []string{"flour", "tomato", "mozzarella"}},
	{"Chana Masala", "curry", "indian", []string{"vegan"}, nil, []string{"chickpeas", "tomato", "garam masala"}},
	{"Brownies", "dessert", "american", []string{"vegetarian"}, []string{"egg", "dairy"}, []string{"cocoa", "butter", "sugar", "egg"}},
	{"Miso Ramen", "soup", "japanese", nil, []string{"soy", "gluten"}, []string{"noodles", "miso", "pork belly"}},
	{"Peanut Cookies", "dessert", "american", nil, []string{"peanut"}, []string{"peanut butter", "flour", "sugar"}},
	{"Gazpacho", "soup", "spanish", []string{"vegan"}, nil, []string{"tomato", "cucumber", "olive oil"}},
	{"Beef Tacos", "tacos", "mexican", nil, nil, []string{"tortilla", "beef", "salsa"}},
	{"Mango Sorbet", "dessert", "indian", []string{"vegan"}, nil, []string{"mango", "sugar", "lime"}},
}

type seedResult struct {
	Users   int
	Recipes int
	Ratings int
	BookID  uuid.UUID
}

// seed creates the seed users, n recipes cycling through dishes, a rating
// pattern that gives the popular feed an order, and one book per run.
func seed(ctx context.Context, svcs *api.Services, n int) (seedResult, error) {
	var res seedResult
	for _, u := range seedUsers {
		_, err := svcs.Users.CreateUser(ctx, &types.CreateUserRequest{
			Username:            u.username,
			DietaryPreferences:  u.diets,
			PreferredCategories: u.categories,
			Allergies:           u.allergies,
		})
		if err != nil {
			return res, fmt.Errorf("create user %s: %w", u.username, err)
		}
		res.Users++
	}

	ids := make([]uuid.UUID, 0, n)
	for i := range n {
		d := dishes[i%len(dishes)]
		owner := seedUsers[i%len(seedUsers)].username
		quantities := make([]string, len(d.ingredients))
		for j := range quantities {
			quantities[j] = fmt.Sprintf("%d cup", j+1)
		}
		r, err := svcs.Recipes.CreateRecipe(ctx, &types.CreateRecipeRequest{
			Username:     owner,
			Title:        fmt.Sprintf("%s #%d", d.title, i/len(dishes)+1),
			ChefName:     owner,
			Visibility:   "public",
			Description:  fmt.Sprintf("A %s %s.", d.cuisine, d.category),
			Quantities:   quantities,
			Ingredients:  d.ingredients,
			Steps:        []string{"Prepare the ingredients.", "Cook and serve."},
			Diet:         d.diet,
			Categories:   []string{d.category},
			CuisineTypes: []string{d.cuisine},
			Allergens:    d.allergens,
		})
		if err != nil {
			return res, fmt.Errorf("create recipe %d: %w", i, err)
		}
		ids = append(ids, r.ID)
		res.Recipes++
	}

	for i, id := range ids {
		for j, u := range seedUsers {
			if (i+j)%3 != 0 {
				continue
			}
			if _, err := svcs.Stars.Rate(ctx, id, u.username, 1+(i*7+j)%5); err != nil {
				return res, fmt.Errorf("rate recipe %s: %w", id, err)
			}
			res.Ratings++
		}
	}

	book, err := svcs.Books.CreateBook(ctx, &types.CreateBookRequest{
		Username:    "ada",
		Title:       "Weeknight Favourites",
		Description: "Quick dinners",
	})
	if err != nil {
		return res, fmt.Errorf("create book: %w", err)
	}
	res.BookID = book.ID
	for _, id := range ids[:min(len(ids), 12)] {
		if err := svcs.Books.AddRecipe(ctx, book.ID, &types.AddBookRecipeRequest{Username: "ada", RecipeID: id}); err != nil {
			return res, fmt.Errorf("add recipe to book: %w", err)
		}
	}
	return res, nil
}
