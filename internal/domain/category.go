package domain

import "strings"

// Category groups tasks by area of life.
type Category string

const (
	CategoryPersonal  Category = "PERSONAL"
	CategoryWork      Category = "WORK"
	CategoryShopping  Category = "SHOPPING"
	CategoryHealth    Category = "HEALTH"
	CategoryLearning  Category = "LEARNING"
	CategoryEducation Category = "EDUCATION"
	CategoryFinance   Category = "FINANCE"
	CategoryTravel    Category = "TRAVEL"
	CategoryHome      Category = "HOME"
	CategoryOther     Category = "OTHER"
)

var Categories = []Category{
	CategoryPersonal,
	CategoryWork,
	CategoryShopping,
	CategoryHealth,
	CategoryLearning,
	CategoryEducation,
	CategoryFinance,
	CategoryTravel,
	CategoryHome,
	CategoryOther,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory resolves a category by name or display name, ignoring case.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, CategoryDisplay(c).DisplayName) {
			return c, true
		}
	}
	return CategoryOther, false
}

// CategoryFromDisplayName falls back to OTHER for unknown names.
func CategoryFromDisplayName(name string) Category {
	c, _ := ParseCategory(name)
	return c
}
