package token

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// SyntheticIssuer marks impersonation tokens. No real credential exchange
// backs them; the issuer claim is how the rest of the system tells them
// apart from genuine bearer tokens.
const SyntheticIssuer = "lawbridge-impersonation"

// syntheticKey signs impersonation tokens. The tokens are a client-side
// marker only, never presented to a server for authentication, so a fixed
// in-process key is sufficient and keeps minting deterministic per subject.
var syntheticKey = []byte("lawbridge-session-core/synthetic")

var (
	ErrNotSynthetic = errors.New("token is not a synthetic impersonation token")
	ErrNoSubject    = errors.New("token has no subject")
)

// MintSynthetic derives an impersonation bearer token from the target
// identity's id. Minting is deterministic: the same id always yields the
// same token, so impersonating twice never strands a stale credential.
func MintSynthetic(subjectID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:  SyntheticIssuer,
		Subject: subjectID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(syntheticKey)
	if err != nil {
		return "", errors.Wrap(err, "[MintSynthetic] sign")
	}
	return signed, nil
}

// IsSynthetic reports whether raw is an impersonation token minted by this
// process family. Anything unparseable is simply not synthetic.
func IsSynthetic(raw string) bool {
	claims := jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return syntheticKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return false
	}
	return claims.Issuer == SyntheticIssuer
}

// Subject extracts the impersonated identity's id from a synthetic token.
func Subject(raw string) (string, error) {
	claims := jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return syntheticKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid || claims.Issuer != SyntheticIssuer {
		return "", ErrNotSynthetic
	}
	if claims.Subject == "" {
		return "", ErrNoSubject
	}
	return claims.Subject, nil
}
