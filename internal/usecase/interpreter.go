package usecase

import (
	"fmt"

	"HomeworkWatcher/internal/domain"
)

// Parse reads the name and status of one homework record. A null field counts as missing.
func Parse(record any) (domain.Homework, error) {
	fields, ok := record.(map[string]any)
	if !ok {
		return domain.Homework{}, fmt.Errorf("%w: homework record is %s, not an object", domain.ErrSchema, kindOf(record))
	}

	name, ok := fields[domain.FieldHomeworkName]
	if !ok || name == nil {
		return domain.Homework{}, fmt.Errorf("%w: key %q", domain.ErrFieldMissing, domain.FieldHomeworkName)
	}
	status, ok := fields[domain.FieldStatus]
	if !ok || status == nil {
		return domain.Homework{}, fmt.Errorf("%w: key %q", domain.ErrFieldMissing, domain.FieldStatus)
	}

	code, ok := status.(string)
	if !ok {
		return domain.Homework{}, fmt.Errorf("%w: %v", domain.ErrUnknownStatus, status)
	}
	if _, known := domain.Status(code).Verdict(); !known {
		return domain.Homework{}, fmt.Errorf("%w: %q", domain.ErrUnknownStatus, code)
	}

	return domain.Homework{Name: fmt.Sprint(name), Status: domain.Status(code)}, nil
}

// Message renders the chat text for a parsed homework.
func Message(hw domain.Homework) string {
	verdict, _ := hw.Status.Verdict()
	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", hw.Name, verdict)
}

// Render maps one homework record to the chat text.
func Render(record any) (string, error) {
	hw, err := Parse(record)
	if err != nil {
		return "", err
	}
	return Message(hw), nil
}
