package service

import "errors"

var (
	// ErrBidNotFound is returned when the referenced bid does not exist.
	ErrBidNotFound = errors.New("bid not found")

	// ErrLoadNotFound is returned when the referenced load does not exist.
	ErrLoadNotFound = errors.New("load not found")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrBenefitNotFound is returned when the referenced benefit does not exist.
	ErrBenefitNotFound = errors.New("benefit not found")

	// ErrTransactionNotFound is returned when the referenced transaction does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrUnauthorized is returned when the caller may not perform the operation.
	ErrUnauthorized = errors.New("not authorized")

	// ErrInvalidCredentials is returned when login credentials do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrIneligibleTrucker is returned when accepting a bid whose trucker
	// failed the eligibility check at bid time.
	ErrIneligibleTrucker = errors.New("trucker not eligible")

	// ErrLoadNotBiddable is returned when bidding on a load that is not pending.
	ErrLoadNotBiddable = errors.New("load not open for bidding")

	// ErrLoadBusy is returned when another bid on the same load is being evaluated.
	ErrLoadBusy = errors.New("load is busy, try again")

	// ErrInvalidTransition is returned when a load status change is not allowed
	// from the current status or for the caller's role.
	ErrInvalidTransition = errors.New("invalid load status transition")

	// ErrInvalidBidAmount is returned when a bid amount is not positive.
	ErrInvalidBidAmount = errors.New("invalid bid amount")

	// ErrInvalidLoadID is returned when a load ID is empty.
	ErrInvalidLoadID = errors.New("invalid load id")

	// ErrInvalidBidID is returned when a bid ID is empty.
	ErrInvalidBidID = errors.New("invalid bid id")

	// ErrInvalidUserID is returned when a user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidLocation is returned when tracking coordinates are invalid.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidAmount is returned when a transaction amount is not positive.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientBalance is returned when a payment exceeds the user's balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)
