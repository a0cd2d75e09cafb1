package credentials

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lawbridge/go-session-core/identity"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

var _ Exchanger = (*PasswordGrantExchanger)(nil)

// PasswordGrantExchanger performs a resource-owner-password-credentials
// exchange against the marketplace's OAuth2 token endpoint, then resolves
// the identity from the userinfo endpoint with the issued token.
type PasswordGrantExchanger struct {
	config      *oauth2.Config
	userInfoURL string
	client      *http.Client
}

// NewPasswordGrantExchanger wires the exchanger to a token endpoint and a
// userinfo endpoint returning the identity JSON shape.
func NewPasswordGrantExchanger(config *oauth2.Config, userInfoURL string) (*PasswordGrantExchanger, error) {
	if config == nil {
		return nil, errors.New("[NewPasswordGrantExchanger] oauth2 config is required")
	}
	if userInfoURL == "" {
		return nil, errors.New("[NewPasswordGrantExchanger] userinfo URL is required")
	}
	return &PasswordGrantExchanger{
		config:      config,
		userInfoURL: userInfoURL,
		client:      http.DefaultClient,
	}, nil
}

func (pg *PasswordGrantExchanger) Exchange(ctx context.Context, email, password string) (*Result, error) {
	tok, err := pg.config.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, InvalidCredentialsErr
		}
		return nil, errors.Wrap(err, "[Exchange] token request")
	}

	id, err := pg.fetchIdentity(ctx, tok)
	if err != nil {
		return nil, errors.Wrap(err, "[Exchange] userinfo")
	}
	return &Result{Identity: *id, Token: tok.AccessToken}, nil
}

func (pg *PasswordGrantExchanger) fetchIdentity(ctx context.Context, tok *oauth2.Token) (*identity.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pg.userInfoURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	tok.SetAuthHeader(req)

	resp, err := pg.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("userinfo status %d", resp.StatusCode)
	}

	var id identity.Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, errors.Wrap(err, "decode identity")
	}
	id.Role = id.NormalizedRole()
	return &id, nil
}
