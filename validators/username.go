package validators

import (
	"errors"
	"regexp"
	"unicode/utf8"
)

// ReservedUsername is taken by the self-service profile route
const ReservedUsername = "me"

const maxUsernameLength = 150

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

var (
	ErrUsernameEmpty    = errors.New("no username provided")
	ErrUsernameTooLong  = errors.New("username must be at most 150 characters long")
	ErrUsernameInvalid  = errors.New("username may only contain letters, digits and @/./+/-/_")
	ErrUsernameReserved = errors.New("this username is reserved")
)

func UsernameValidator(u string) error {
	if u == "" {
		return ErrUsernameEmpty
	}

	if utf8.RuneCountInString(u) > maxUsernameLength {
		return ErrUsernameTooLong
	}

	if u == ReservedUsername {
		return ErrUsernameReserved
	}

	if !usernamePattern.MatchString(u) {
		return ErrUsernameInvalid
	}

	return nil
}
