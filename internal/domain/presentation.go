package domain

import "fmt"

// PriorityInfo is the presentation metadata for a priority.
type PriorityInfo struct {
	DisplayName string
	Color       uint32 // ARGB
}

// CategoryInfo is the presentation metadata for a category.
type CategoryInfo struct {
	DisplayName string
	Icon        string
}

var priorityInfo = map[Priority]PriorityInfo{
	PriorityLow:    {DisplayName: "Low", Color: 0xFF4CAF50},
	PriorityMedium: {DisplayName: "Medium", Color: 0xFFFF9800},
	PriorityHigh:   {DisplayName: "High", Color: 0xFFF44336},
	PriorityUrgent: {DisplayName: "Urgent", Color: 0xFF9C27B0},
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryPersonal:  {DisplayName: "Personal", Icon: "person"},
	CategoryWork:      {DisplayName: "Work", Icon: "work"},
	CategoryShopping:  {DisplayName: "Shopping", Icon: "shopping_cart"},
	CategoryHealth:    {DisplayName: "Health", Icon: "favorite"},
	CategoryLearning:  {DisplayName: "Learning", Icon: "school"},
	CategoryEducation: {DisplayName: "Education", Icon: "school"},
	CategoryFinance:   {DisplayName: "Finance", Icon: "attach_money"},
	CategoryTravel:    {DisplayName: "Travel", Icon: "flight"},
	CategoryHome:      {DisplayName: "Home", Icon: "home"},
	CategoryOther:     {DisplayName: "Other", Icon: "category"},
}

// PriorityDisplay returns presentation metadata, using MEDIUM for unknown values.
func PriorityDisplay(p Priority) PriorityInfo {
	if info, ok := priorityInfo[p]; ok {
		return info
	}
	return priorityInfo[PriorityMedium]
}

// CategoryDisplay returns presentation metadata, using OTHER for unknown values.
func CategoryDisplay(c Category) CategoryInfo {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	return categoryInfo[CategoryOther]
}

// HexColor renders the RGB part of an ARGB colour as "#RRGGBB".
func (p PriorityInfo) HexColor() string {
	return fmt.Sprintf("#%06X", p.Color&0xFFFFFF)
}
