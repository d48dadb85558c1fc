package feeds

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Meal is a recipe summary from TheMealDB's by-ingredient filter.
type Meal struct {
	ID    string `json:"idMeal"`
	Name  string `json:"strMeal"`
	Thumb string `json:"strMealThumb"`
}

// MealDetails is a full recipe from TheMealDB's lookup endpoint.
type MealDetails struct {
	ID           string `json:"idMeal"`
	Name         string `json:"strMeal"`
	Category     string `json:"strCategory"`
	Area         string `json:"strArea"`
	Instructions string `json:"strInstructions"`
	Thumb        string `json:"strMealThumb"`
	Youtube      string `json:"strYoutube"`
}

type mealsResponse struct {
	Meals []Meal `json:"meals"`
}

type mealDetailsResponse struct {
	Meals []MealDetails `json:"meals"`
}

// RecipeClient queries TheMealDB.
type RecipeClient struct {
	http *resty.Client
}

// NewRecipeClient creates a client against the given base URL
// (https://www.themealdb.com/api/json/v1/1 in production).
func NewRecipeClient(baseURL string, timeout time.Duration) *RecipeClient {
	return &RecipeClient{
		http: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
	}
}

// ByIngredient returns meals containing the given ingredient. The feed
// reports "no matches" as a null meal list, which maps to an empty slice.
func (c *RecipeClient) ByIngredient(ctx context.Context, ingredient string) ([]Meal, error) {
	var out mealsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("i", ingredient).
		SetResult(&out).
		Get("/filter.php")
	if err != nil {
		return nil, fmt.Errorf("fetching meals for %q: %w", ingredient, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("recipe feed returned %s", resp.Status())
	}
	return out.Meals, nil
}

// ByID returns the full recipe for a meal id, or nil if unknown.
func (c *RecipeClient) ByID(ctx context.Context, id string) (*MealDetails, error) {
	var out mealDetailsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("i", id).
		SetResult(&out).
		Get("/lookup.php")
	if err != nil {
		return nil, fmt.Errorf("fetching meal %s: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("recipe feed returned %s", resp.Status())
	}
	if len(out.Meals) == 0 {
		return nil, nil
	}
	return &out.Meals[0], nil
}
