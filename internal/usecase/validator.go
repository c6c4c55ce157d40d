package usecase

import (
	"fmt"

	"HomeworkWatcher/internal/config"
	"HomeworkWatcher/internal/domain"
)

// Extract checks the decoded response shape and returns the homework records unmodified.
func Extract(raw domain.RawResponse, policy config.EmptyPolicy) ([]any, error) {
	payload, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: response is %s, not an object", domain.ErrSchema, kindOf(raw))
	}

	value, ok := payload[domain.FieldHomeworks]
	if !ok || value == nil {
		return nil, fmt.Errorf("%w: key %q is missing", domain.ErrSchema, domain.FieldHomeworks)
	}

	records, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %s, not a list", domain.ErrSchema, domain.FieldHomeworks, kindOf(value))
	}

	if len(records) == 0 && policy != config.EmptyLenient {
		return nil, fmt.Errorf("%w: %q list is empty", domain.ErrSchema, domain.FieldHomeworks)
	}

	return records, nil
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return "a list"
	case string:
		return "a string"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
