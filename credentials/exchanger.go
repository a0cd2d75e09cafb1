package credentials

import (
	"context"
	"errors"

	"github.com/lawbridge/go-session-core/identity"
)

var (
	InvalidCredentialsErr = errors.New("invalid credentials")
	InvalidRecoveryKeyErr = errors.New("invalid recovery key")
	AccountNotFoundErr    = errors.New("account not found")
)

// Result is the success shape of a credential exchange: the authenticated
// identity plus an opaque bearer token. The session core consumes this via
// Controller.Login; it never inspects the token.
type Result struct {
	Identity identity.Identity
	Token    string
}

// Exchanger trades primary credentials for an authenticated identity.
// Transient transport failures are returned as errors and surfaced to the
// UI; the session stays unauthenticated and nothing retries automatically.
type Exchanger interface {
	Exchange(ctx context.Context, email, password string) (*Result, error)
}

// Recoverer trades an emergency recovery key for an authenticated identity,
// the break-glass path when the password is lost.
type Recoverer interface {
	Recover(ctx context.Context, email, key string) (*Result, error)
}
