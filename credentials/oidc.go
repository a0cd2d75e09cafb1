package credentials

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/lawbridge/go-session-core/identity"
	"github.com/pkg/errors"
)

// OIDCExchanger maps a verified OIDC ID token to an identity, the SSO login
// path. It does not take a password; the user authenticated at the provider.
type OIDCExchanger struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDCExchanger wraps an ID token verifier, typically
// provider.Verifier(&oidc.Config{ClientID: ...}).
func NewOIDCExchanger(verifier *oidc.IDTokenVerifier) (*OIDCExchanger, error) {
	if verifier == nil {
		return nil, errors.New("[NewOIDCExchanger] verifier is required")
	}
	return &OIDCExchanger{verifier: verifier}, nil
}

// ExchangeIDToken verifies rawIDToken and builds an identity from its
// claims. The role claim is normalized at this boundary; an account with no
// role claim comes back with RoleUnknown and will be denied everywhere.
func (oe *OIDCExchanger) ExchangeIDToken(ctx context.Context, rawIDToken string) (*Result, error) {
	idToken, err := oe.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.Wrap(err, "[ExchangeIDToken] verify")
	}

	var claims struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Role      string `json:"role"`
		Plan      string `json:"plan"`
		IsPremium bool   `json:"isPremium"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.Wrap(err, "[ExchangeIDToken] claims")
	}

	id := identity.Identity{
		ID:      idToken.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Role:    identity.Normalize(claims.Role),
		Plan:    claims.Plan,
		Premium: claims.IsPremium,
	}
	return &Result{Identity: id, Token: rawIDToken}, nil
}
