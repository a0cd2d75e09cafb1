package credfake

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/lawbridge/go-session-core/credentials"
	"github.com/lawbridge/go-session-core/identity"
	"golang.org/x/crypto/bcrypt"
)

var (
	_ credentials.Exchanger = (*FakeExchanger)(nil)
	_ credentials.Recoverer = (*FakeExchanger)(nil)
)

type account struct {
	id           identity.Identity
	passwordHash string
	recoveryKey  string
	token        string
}

// FakeExchanger is an in-memory credential exchange for tests and the demo
// CLI. Passwords are held as bcrypt hashes; verification mirrors a real
// backend without any network.
type FakeExchanger struct {
	accounts map[string]*account // keyed by email
	lock     sync.RWMutex
}

func New() *FakeExchanger {
	return &FakeExchanger{accounts: make(map[string]*account)}
}

// AddAccount registers a fixture account and returns the bearer token its
// successful exchanges will carry.
func (fe *FakeExchanger) AddAccount(id identity.Identity, password, recoveryKey string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return "", err
	}

	fe.lock.Lock()
	defer fe.lock.Unlock()

	if id.ID == "" {
		id.ID = uuid.New().String()
	}
	tok := "tok-" + uuid.New().String()
	fe.accounts[id.Email] = &account{
		id:           id,
		passwordHash: string(hash),
		recoveryKey:  recoveryKey,
		token:        tok,
	}
	return tok, nil
}

func (fe *FakeExchanger) Exchange(ctx context.Context, email, password string) (*credentials.Result, error) {
	fe.lock.RLock()
	defer fe.lock.RUnlock()

	acct, ok := fe.accounts[email]
	if !ok {
		return nil, credentials.InvalidCredentialsErr
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.passwordHash), []byte(password)) != nil {
		return nil, credentials.InvalidCredentialsErr
	}
	return &credentials.Result{Identity: acct.id, Token: acct.token}, nil
}

func (fe *FakeExchanger) Recover(ctx context.Context, email, key string) (*credentials.Result, error) {
	fe.lock.RLock()
	defer fe.lock.RUnlock()

	acct, ok := fe.accounts[email]
	if !ok {
		return nil, credentials.AccountNotFoundErr
	}
	if acct.recoveryKey == "" || acct.recoveryKey != key {
		return nil, credentials.InvalidRecoveryKeyErr
	}
	return &credentials.Result{Identity: acct.id, Token: acct.token}, nil
}
