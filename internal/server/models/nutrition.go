package models

import "time"

// NutritionFact is one search hit, from the remote API or the local catalog.
type NutritionFact struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// NutritionRecord is a search result the user saved to their history.
type NutritionRecord struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"-"`
	FoodName  string    `json:"food_name"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
	CreatedAt time.Time `json:"created_at"`
}
