package validation

import (
	"strings"

	"todo-engine/internal/config"
	"todo-engine/internal/domain"
)

// TaskValidator checks task drafts, ids and the summary time setting.
type TaskValidator struct {
	validator *Validator
}

func NewTaskValidator() *TaskValidator {
	return &TaskValidator{validator: NewValidator()}
}

// NewTaskValidatorWithConfig uses the length limits from cfg.
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateTitle rejects blank and over-long titles.
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := strings.TrimSpace(title)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("title")
		return validationError
	}

	if max := tv.validator.titleMaxLength(); !tv.validator.IsWithinLength(trimmed, max) {
		validationError.AddInvalidLengthError("title", trimmed, max)
	}

	return validationError.OrNil()
}

// ValidateDraft checks every editable field of a task. Drafts are expected to be normalised first.
func (tv *TaskValidator) ValidateDraft(draft domain.Draft) error {
	validationError := NewValidationError()
	validationError.Merge(tv.ValidateTitle(draft.Title))

	if max := tv.validator.descriptionMaxLength(); !tv.validator.IsWithinLength(draft.Description, max) {
		validationError.AddInvalidLengthError("description", draft.Description, max)
	}

	if !draft.Priority.IsValid() {
		validationError.AddInvalidValueError("priority", draft.Priority, "must be one of LOW, MEDIUM, HIGH, URGENT")
	}

	if !draft.Category.IsValid() {
		validationError.AddInvalidValueError("category", draft.Category, "is not a known category")
	}

	if draft.HasReminder && draft.DueAt == nil {
		validationError.AddInvalidRangeError("reminder", nil, "needs a due date")
	}

	return validationError.OrNil()
}

// ValidateTask validates a persisted task before a full replacement
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	validationError := NewValidationError()
	validationError.Merge(tv.ValidateTaskID(task.ID))
	validationError.Merge(tv.ValidateDraft(task.Draft()))
	return validationError.OrNil()
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if id <= 0 {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("task_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// ValidateSummaryTime validates the daily summary wall-clock time
func (tv *TaskValidator) ValidateSummaryTime(hour, minute int) error {
	if !tv.validator.IsValidClockTime(hour, minute) {
		validationError := NewValidationError()
		validationError.AddInvalidRangeError("daily_summary_time", [2]int{hour, minute}, "needs an hour of 0-23 and a minute of 0-59")
		return validationError
	}
	return nil
}
