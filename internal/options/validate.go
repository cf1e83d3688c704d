// Package options provides shared utilities for option validation.
package options

import "fmt"

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is
// set. noSourceMsg and multiSourceMsg are the error messages for the zero
// and multiple cases respectively.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	count := 0
	for _, hasSource := range sources {
		if hasSource {
			count++
		}
	}

	if count == 0 {
		return fmt.Errorf("%s", noSourceMsg)
	}
	if count > 1 {
		return fmt.Errorf("%s", multiSourceMsg)
	}

	return nil
}

// ValidateNonNegative ensures a numeric option was not given a negative
// value. Zero is allowed and means "use the default".
func ValidateNonNegative(name string, value int64) error {
	if value < 0 {
		return fmt.Errorf("%s must not be negative (got %d)", name, value)
	}
	return nil
}
