package sparsipy

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the base error for invalid estimator configuration:
// bad scopes, shape mismatches, malformed step lists. All validation
// failures in this package wrap it.
var ErrConfiguration = errors.New("invalid estimator configuration")

// ErrParameterName reports an unknown step or parameter name passed to
// SetParams. It wraps ErrConfiguration, so errors.Is(err, ErrConfiguration)
// holds for it as well.
var ErrParameterName = fmt.Errorf("%w: unknown parameter name", ErrConfiguration)

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func paramNameErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParameterName, fmt.Sprintf(format, args...))
}
