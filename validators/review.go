package validators

import "errors"

const (
	MinScore = 1
	MaxScore = 10
)

var ErrScoreOutOfRange = errors.New("score must be between 1 and 10")

func ScoreValidator(score int) error {
	if score < MinScore || score > MaxScore {
		return ErrScoreOutOfRange
	}

	return nil
}
