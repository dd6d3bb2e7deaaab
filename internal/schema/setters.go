package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// TextSetter stores trimmed input, rejecting empty values.
func TextSetter() SetterFunc {
	return func(raw string) (interface{}, error) {
		v := strings.TrimSpace(raw)
		if v == "" {
			return nil, &ValidationError{Message: "Value is required."}
		}
		return v, nil
	}
}

// SelectSetter accepts only one of the given options.
func SelectSetter(options []string) SetterFunc {
	return func(raw string) (interface{}, error) {
		v := strings.TrimSpace(raw)
		for _, opt := range options {
			if v == opt {
				return v, nil
			}
		}
		return nil, &ValidationError{
			Message: fmt.Sprintf("Invalid value %q, please choose one of: %s", v, strings.Join(options, ", ")),
		}
	}
}

// DecimalSetter parses a float64, optionally enforcing a lower bound.
func DecimalSetter(min *float64) SetterFunc {
	return func(raw string) (interface{}, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("%s is not a valid decimal.", strings.TrimSpace(raw))}
		}
		if min != nil && v < *min {
			return nil, &ValidationError{Message: fmt.Sprintf("Value must be at least %v.", *min)}
		}
		return v, nil
	}
}

// IntSetter parses a base-10 integer.
func IntSetter() SetterFunc {
	return func(raw string) (interface{}, error) {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("%s is not a valid integer.", strings.TrimSpace(raw))}
		}
		return v, nil
	}
}

// BoolSetter accepts yes/no style answers.
func BoolSetter() SetterFunc {
	return func(raw string) (interface{}, error) {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "yes", "y", "true":
			return true, nil
		case "no", "n", "false":
			return false, nil
		}
		return nil, &ValidationError{Message: "Please enter Yes or No."}
	}
}
