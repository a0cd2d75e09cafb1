package session

import "errors"

var (
	NotAuthenticatedErr = errors.New("session not authenticated")
	NoIdentityErr       = errors.New("no identity in session")
)
