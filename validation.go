package ripple

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// Limits the ripple backend applies to every event.
const (
	MinEventNameLength  = 1
	MaxEventNameLength  = 40
	MaxParams           = 25
	MaxParamKeyLength   = 40
	MaxParamValueLength = 100
	MaxMetadataKeyLen   = 255
)

// ValidateEventName checks that name is between 1 and 40 characters long.
func ValidateEventName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < MinEventNameLength || n > MaxEventNameLength {
		return fmt.Errorf("%w: %q has %d characters, must be between %d and %d",
			ErrInvalidEventName, name, n, MinEventNameLength, MaxEventNameLength)
	}
	return nil
}

// ValidateParams checks the parameter count, key lengths and value types.
// A nil map is valid.
func ValidateParams(params Params) error {
	if len(params) > MaxParams {
		return fmt.Errorf("%w: %d parameters, at most %d allowed", ErrInvalidParam, len(params), MaxParams)
	}

	for key, value := range params {
		n := utf8.RuneCountInString(key)
		if n == 0 || n > MaxParamKeyLength {
			return fmt.Errorf("%w: key %q must be between 1 and %d characters", ErrInvalidParam, key, MaxParamKeyLength)
		}

		switch v := value.(type) {
		case string:
			if utf8.RuneCountInString(v) > MaxParamValueLength {
				return fmt.Errorf("%w: value of %q exceeds %d characters", ErrInvalidParam, key, MaxParamValueLength)
			}
		case float32:
			if err := checkFinite(key, float64(v)); err != nil {
				return err
			}
		case float64:
			if err := checkFinite(key, v); err != nil {
				return err
			}
		case bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64:
		default:
			return fmt.Errorf("%w: value of %q has unsupported type %T", ErrInvalidParam, key, value)
		}
	}
	return nil
}

// checkFinite rejects NaN and infinities, which JSON cannot carry.
func checkFinite(key string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: value of %q is %v, must be finite", ErrInvalidParam, key, v)
	}
	return nil
}
