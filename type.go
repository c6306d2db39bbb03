package fluvial

import "fmt"

// OutputMode selects the goodness-of-fit metric written by the amplitude
// locator.
type OutputMode string

const (
	Variance  OutputMode = "variance"
	Residuals OutputMode = "residuals"
)

// ConfigurationError reports missing or contradictory input parameters.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return "configuration: " + e.Msg }

// DomainError reports a physically invalid intermediate result, such as a
// non-positive critical stress or a zero denominator.
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string { return "domain: " + e.Msg }

// OutOfBoundsError reports station or AOI coordinates beyond the DEM extent.
type OutOfBoundsError struct {
	Msg string
}

func (e *OutOfBoundsError) Error() string { return "out of bounds: " + e.Msg }

// InvalidInputError reports NaN values in a required input.
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string { return "invalid input: " + e.Msg }

// InvalidOutputModeError reports an unrecognized OutputMode value.
type InvalidOutputModeError struct {
	Mode OutputMode
}

func (e *InvalidOutputModeError) Error() string {
	return fmt.Sprintf("invalid output mode %q: must be %q or %q", e.Mode, Variance, Residuals)
}

// NoValidDataError reports that an entire batch was unusable.
type NoValidDataError struct {
	Msg string
}

func (e *NoValidDataError) Error() string { return "no valid data: " + e.Msg }

func configErrorf(format string, args ...interface{}) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

func domainErrorf(format string, args ...interface{}) error {
	return &DomainError{Msg: fmt.Sprintf(format, args...)}
}

func boundsErrorf(format string, args ...interface{}) error {
	return &OutOfBoundsError{Msg: fmt.Sprintf(format, args...)}
}

func inputErrorf(format string, args ...interface{}) error {
	return &InvalidInputError{Msg: fmt.Sprintf(format, args...)}
}
