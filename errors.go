package propcheck

import (
	"errors"
	"fmt"

	"propcheck/random"
)

// ErrConfiguration is returned for value spaces that cannot produce any
// sample: invalid ranges, empty choices, filters rejecting the whole domain
// and similar mistakes in a domain description.
var ErrConfiguration = errors.New("propcheck: invalid configuration")

// ErrTooManyFilterMisses is returned, wrapped with ErrConfiguration, when a
// filter rejects too many samples in a row.
var ErrTooManyFilterMisses = random.ErrTooManyMisses

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// asConfigurationError marks exhausted retry budgets as configuration errors.
func asConfigurationError(err error) error {
	if err == nil || errors.Is(err, ErrConfiguration) {
		return err
	}
	if errors.Is(err, random.ErrTooManyMisses) || errors.Is(err, random.ErrUniqueExhausted) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return err
}
