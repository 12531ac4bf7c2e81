package domain

import "context"

// QuoteProvider defines the interface for looking up current market data.
// The provider is network-backed and must be treated as unreliable: a
// failed lookup surfaces as ErrSymbolNotFound or ErrQuoteUnavailable,
// never as a defaulted price.
type QuoteProvider interface {
	Lookup(ctx context.Context, symbol string) (*Quote, error)
}

// PasswordHasher defines the interface for credential hashing. The core
// never stores or compares plaintext passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}
