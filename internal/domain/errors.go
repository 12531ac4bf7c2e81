package domain

import "errors"

// Trading and account errors. Handlers map these to HTTP statuses with
// errors.Is; storage failures are wrapped with fmt.Errorf("...: %w", err)
// and never exposed to the client.
var (
	// ErrInvalidInput indicates a missing or malformed request field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSymbolNotFound indicates the quote provider knows no such ticker.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrQuoteUnavailable indicates the quote provider could not be reached
	// or returned an unusable response.
	ErrQuoteUnavailable = errors.New("quote unavailable")

	// ErrInsufficientFunds indicates a buy exceeding the cash balance.
	ErrInsufficientFunds = errors.New("not enough cash")

	// ErrInsufficientShares indicates a sell exceeding the held share count.
	ErrInsufficientShares = errors.New("too many shares")

	// ErrStockNotOwned indicates a sell of a symbol the user does not hold.
	ErrStockNotOwned = errors.New("stock not owned")

	// ErrUsernameTaken indicates a registration with an existing username.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials indicates a failed login. Unknown username and
	// wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username and/or password")

	// ErrUserNotFound indicates an unknown user id. A request carrying an
	// authenticated id that does not exist is a caller bug.
	ErrUserNotFound = errors.New("user not found")
)
