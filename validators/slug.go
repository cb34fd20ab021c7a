package validators

import (
	"errors"
	"regexp"
)

const maxSlugLength = 50

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var (
	ErrSlugEmpty   = errors.New("no slug provided")
	ErrSlugTooLong = errors.New("slug must be at most 50 characters long")
	ErrSlugInvalid = errors.New("slug may only contain latin letters, digits, hyphens and underscores")
)

func SlugValidator(s string) error {
	if s == "" {
		return ErrSlugEmpty
	}

	if len(s) > maxSlugLength {
		return ErrSlugTooLong
	}

	if !slugPattern.MatchString(s) {
		return ErrSlugInvalid
	}

	return nil
}
