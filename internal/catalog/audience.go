package catalog

import "github.com/bookwright/bookwright/internal/api"

// Audiences returns the target audience options.
func Audiences() []api.Option {
	return []api.Option{
		{ID: "adult", Name: "Adult", Description: "Ages 18+ - Full range of themes and complexity"},
		{ID: "young_adult", Name: "Young Adult", Description: "Ages 13-18 - Coming-of-age themes"},
		{ID: "new_adult", Name: "New Adult", Description: "Ages 18-25 - College/early career themes"},
		{ID: "middle_grade", Name: "Middle Grade", Description: "Ages 8-12 - Adventure and friendship themes"},
	}
}
