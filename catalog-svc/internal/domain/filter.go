package domain

import (
	"fmt"
	"strings"
)

type Availability string

const (
	// AvailabilityDefault lists active dishes only.
	AvailabilityDefault     Availability = ""
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
	AvailabilityAll         Availability = "all"
)

func ParseAvailability(raw string) (Availability, error) {
	switch a := Availability(strings.ToLower(strings.TrimSpace(raw))); a {
	case AvailabilityDefault, AvailabilityAvailable, AvailabilityUnavailable, AvailabilityAll:
		return a, nil
	}
	return "", fmt.Errorf("%w: unknown availability %q", ErrValidation, raw)
}

// DishFilter narrows a dish listing. Nil bounds are open.
type DishFilter struct {
	Search       string
	CategoryID   *int
	MinPrice     *float64
	MaxPrice     *float64
	MinPrepTime  *int
	MaxPrepTime  *int
	MinRating    *float64
	Availability Availability
}

// Matches reports whether the dish passes every set condition.
func (f DishFilter) Matches(dish Dish) bool {
	switch f.Availability {
	case AvailabilityDefault, AvailabilityAvailable:
		if !dish.Active {
			return false
		}
	case AvailabilityUnavailable:
		if dish.Active {
			return false
		}
	}

	if f.CategoryID != nil && dish.CategoryID != *f.CategoryID {
		return false
	}
	if f.MinPrice != nil && dish.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && dish.Price > *f.MaxPrice {
		return false
	}
	if f.MinPrepTime != nil && dish.PreparationTime < *f.MinPrepTime {
		return false
	}
	if f.MaxPrepTime != nil && dish.PreparationTime > *f.MaxPrepTime {
		return false
	}
	if f.MinRating != nil && dish.AverageRating < *f.MinRating {
		return false
	}

	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		return matchesSearch(dish, term)
	}
	return true
}

func matchesSearch(dish Dish, term string) bool {
	if strings.Contains(strings.ToLower(dish.Name), term) ||
		strings.Contains(strings.ToLower(dish.Description), term) {
		return true
	}
	for _, ingredient := range dish.Ingredients {
		if strings.Contains(strings.ToLower(ingredient), term) {
			return true
		}
	}
	return false
}

// ApplyFilter keeps the order of dishes.
func ApplyFilter(dishes []Dish, filter DishFilter) []Dish {
	out := make([]Dish, 0, len(dishes))
	for _, dish := range dishes {
		if filter.Matches(dish) {
			out = append(out, dish)
		}
	}
	return out
}
