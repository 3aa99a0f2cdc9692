package validation

import (
	"strings"
	"testing"
	"time"

	"todo-engine/internal/config"
	"todo-engine/internal/domain"
)

func TestTaskValidator_ValidateTitle(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		input       string
		expectError bool
		errorType   ValidationErrorType
	}{
		{"Valid title", "Buy milk", false, ""},
		{"Empty title", "", true, ErrorTypeRequired},
		{"Whitespace only", "   ", true, ErrorTypeRequired},
		{"Too long title", strings.Repeat("a", 256), true, ErrorTypeInvalidLength},
		{"Valid long title", strings.Repeat("a", 255), false, ""},
		{"Punctuation is fine", "Pay bills @ 5pm #home", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateTitle(tt.input)

			if !tt.expectError {
				if err != nil {
					t.Errorf("ValidateTitle(%q) expected no error but got %v", tt.input, err)
				}
				return
			}

			validationErr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("ValidateTitle(%q) expected ValidationError but got %T", tt.input, err)
			}
			if validationErr.Errors[0].Type != tt.errorType {
				t.Errorf("ValidateTitle(%q) expected error type %v but got %v", tt.input, tt.errorType, validationErr.Errors[0].Type)
			}
		})
	}
}

func TestTaskValidator_ValidateDraft(t *testing.T) {
	validator := NewTaskValidator()
	due := time.Date(2026, 6, 1, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name           string
		draft          domain.Draft
		expectedFields []string
	}{
		{"Valid draft", domain.NewDraft("Buy milk"), nil},
		{"Blank title", domain.NewDraft(" "), []string{"title"}},
		{"Unknown priority", domain.Draft{Title: "x", Priority: 7, Category: domain.CategoryWork}, []string{"priority"}},
		{"Unknown category", domain.Draft{Title: "x", Priority: domain.PriorityLow, Category: "GARDEN"}, []string{"category"}},
		{"Reminder without due date", domain.Draft{Title: "x", Priority: domain.PriorityLow, Category: domain.CategoryWork, HasReminder: true}, []string{"reminder"}},
		{"Reminder with due date", domain.Draft{Title: "x", Priority: domain.PriorityLow, Category: domain.CategoryWork, HasReminder: true, DueAt: &due}, nil},
		{"Everything wrong", domain.Draft{Title: "", Priority: 0, Category: ""}, []string{"title", "priority", "category"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateDraft(tt.draft)

			if len(tt.expectedFields) == 0 {
				if err != nil {
					t.Errorf("ValidateDraft() expected no error but got %v", err)
				}
				return
			}

			validationErr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("ValidateDraft() expected ValidationError but got %T (%v)", err, err)
			}
			if len(validationErr.Errors) != len(tt.expectedFields) {
				t.Fatalf("ValidateDraft() got %d errors, expected %d: %v", len(validationErr.Errors), len(tt.expectedFields), err)
			}
			for i, field := range tt.expectedFields {
				if validationErr.Errors[i].Field != field {
					t.Errorf("error %d field = %s, expected %s", i, validationErr.Errors[i].Field, field)
				}
			}
		})
	}
}

func TestTaskValidator_ValidateTask(t *testing.T) {
	validator := NewTaskValidator()

	task := domain.Task{ID: 0, Title: "x", Priority: domain.PriorityHigh, Category: domain.CategoryHome}
	err := validator.ValidateTask(task)
	if err == nil || len(err.(*ValidationError).GetFieldErrors("task_id")) != 1 {
		t.Errorf("ValidateTask() with id 0 expected a task_id error, got %v", err)
	}

	task.ID = 12
	if err := validator.ValidateTask(task); err != nil {
		t.Errorf("ValidateTask() expected no error but got %v", err)
	}
}

func TestTaskValidator_ValidateTaskID(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		id          int64
		expectError bool
	}{
		{1, false},
		{999, false},
		{0, true},
		{-4, true},
	}

	for _, tt := range tests {
		err := validator.ValidateTaskID(tt.id)
		if (err != nil) != tt.expectError {
			t.Errorf("ValidateTaskID(%d) error = %v, expectError %v", tt.id, err, tt.expectError)
		}
	}
}

func TestTaskValidator_ValidateSummaryTime(t *testing.T) {
	validator := NewTaskValidator()

	if err := validator.ValidateSummaryTime(9, 0); err != nil {
		t.Errorf("ValidateSummaryTime(9, 0) unexpected error %v", err)
	}
	if err := validator.ValidateSummaryTime(25, 0); err == nil {
		t.Error("ValidateSummaryTime(25, 0) expected an error")
	}
}

func TestNewTaskValidatorWithConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.TitleMaxLength = 5
	validator := NewTaskValidatorWithConfig(cfg)

	if err := validator.ValidateTitle("short"); err != nil {
		t.Errorf("ValidateTitle(short) unexpected error %v", err)
	}
	if err := validator.ValidateTitle("too long"); err == nil {
		t.Error("ValidateTitle(too long) expected a length error")
	}
}
