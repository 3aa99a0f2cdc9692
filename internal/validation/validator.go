package validation

import (
	"strings"
	"unicode/utf8"

	"todo-engine/internal/config"
)

const (
	defaultTitleMaxLength       = 255
	defaultDescriptionMaxLength = 4000
)

// Validator holds the field checks shared by the task and settings validators.
type Validator struct {
	titleMax       int
	descriptionMax int
}

func NewValidator() *Validator {
	return &Validator{titleMax: defaultTitleMaxLength, descriptionMax: defaultDescriptionMaxLength}
}

// NewValidatorWithConfig takes length limits from cfg. Unset limits keep the defaults.
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	v := NewValidator()
	if cfg == nil {
		return v
	}
	if n := cfg.Validation.TitleMaxLength; n > 0 {
		v.titleMax = n
	}
	if n := cfg.Validation.DescriptionMaxLength; n > 0 {
		v.descriptionMax = n
	}
	return v
}

func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinLength counts runes of the trimmed string, so accented titles are not penalised.
func (v *Validator) IsWithinLength(s string, max int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) <= max
}

// IsValidClockTime checks an hour and minute on a 24-hour clock.
func (v *Validator) IsValidClockTime(hour, minute int) bool {
	return 0 <= hour && hour < 24 && 0 <= minute && minute < 60
}

func (v *Validator) titleMaxLength() int       { return v.titleMax }
func (v *Validator) descriptionMaxLength() int { return v.descriptionMax }
