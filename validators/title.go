package validators

import (
	"errors"
	"time"
)

var (
	ErrYearInFuture = errors.New("a title can't be released in the future")
	ErrYearNegative = errors.New("year can't be negative")
)

// YearValidator accepts any year up to and including the current one
func YearValidator(year int, now time.Time) error {
	if year < 0 {
		return ErrYearNegative
	}

	if year > now.Year() {
		return ErrYearInFuture
	}

	return nil
}
