package domain

import "time"

type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Dish carries a rating summary that only the rating subsystem writes.
type Dish struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	ImageURL        string    `json:"image_url"`
	CategoryID      int       `json:"category_id"`
	Active          bool      `json:"active"`
	PreparationTime int       `json:"preparation_time"`
	Ingredients     []string  `json:"ingredients"`
	AverageRating   float64   `json:"average_rating"`
	TotalRatings    int       `json:"total_ratings"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	ImageURL    string `json:"image_url" validate:"omitempty,max=500"`
	Active      *bool  `json:"active"`
}

// CategoryPatch leaves a field untouched when it is nil.
type CategoryPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	ImageURL    *string `json:"image_url" validate:"omitempty,max=500"`
	Active      *bool   `json:"active"`
}

type DishInput struct {
	Name            string   `json:"name" validate:"required,max=150"`
	Description     string   `json:"description" validate:"max=1000"`
	Price           float64  `json:"price" validate:"gte=0"`
	ImageURL        string   `json:"image_url" validate:"omitempty,max=500"`
	CategoryID      int      `json:"category_id" validate:"required,gt=0"`
	Active          *bool    `json:"active"`
	PreparationTime int      `json:"preparation_time" validate:"gte=0,lte=600"`
	Ingredients     []string `json:"ingredients" validate:"dive,max=100"`
}

type DishPatch struct {
	Name            *string   `json:"name" validate:"omitempty,min=1,max=150"`
	Description     *string   `json:"description" validate:"omitempty,max=1000"`
	Price           *float64  `json:"price" validate:"omitempty,gte=0"`
	ImageURL        *string   `json:"image_url" validate:"omitempty,max=500"`
	CategoryID      *int      `json:"category_id" validate:"omitempty,gt=0"`
	Active          *bool     `json:"active"`
	PreparationTime *int      `json:"preparation_time" validate:"omitempty,gte=0,lte=600"`
	Ingredients     *[]string `json:"ingredients"`
}
