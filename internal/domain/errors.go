package domain

import "errors"

// Domain errors
var (
	ErrEmptyName       = errors.New("both player names are required")
	ErrSamePlayer      = errors.New("please enter two different player names")
	ErrInvalidWinner   = errors.New("winner must be one of the two players")
	ErrInvalidCheckout = errors.New("checkout must be a number of zero or more")
	ErrBadPassphrase   = errors.New("reset passphrase does not match")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrInternalError   = errors.New("internal server error")
)

// IsValidationError reports whether an error comes from match submission
// validation. Validation failures never mutate state.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrSamePlayer) ||
		errors.Is(err, ErrInvalidWinner) ||
		errors.Is(err, ErrInvalidCheckout)
}
