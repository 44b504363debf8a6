package validate

import "fmt"

// Text field length limits enforced by the handlers and reported to the
// upload form through the limits endpoint.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxCategoryLength    = 50
	MaxURLLength         = 500
)

func checkLen(value string, max int, field string) string {
	if len(value) > max {
		return fmt.Sprintf("%s must be %d characters or fewer", field, max)
	}
	return ""
}

// Title returns a non-empty message when the title is missing or too long.
func Title(s string) string {
	if s == "" {
		return "title is required"
	}
	return checkLen(s, MaxTitleLength, "title")
}

func Description(s string) string { return checkLen(s, MaxDescriptionLength, "description") }
func Category(s string) string    { return checkLen(s, MaxCategoryLength, "category") }
func URL(s string) string         { return checkLen(s, MaxURLLength, "URL") }

// FieldLimits maps field names to their maximum lengths.
func FieldLimits() map[string]int {
	return map[string]int{
		"title":       MaxTitleLength,
		"description": MaxDescriptionLength,
		"category":    MaxCategoryLength,
		"url":         MaxURLLength,
	}
}
