// Package wallet models the injected-wallet request channel: account access,
// transaction signing+broadcast, and read-only contract calls. The bot never
// touches key material; every transaction is handed to the provider for
// signing.
package wallet

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrUnavailable means no wallet provider is reachable or it exposes no accounts.
	ErrUnavailable = errors.New("wallet: provider unavailable")
	// ErrRejected means the user declined the request in the wallet UI.
	ErrRejected = errors.New("wallet: request rejected by user")
	// ErrProvider covers node/network failures on the provider channel.
	ErrProvider = errors.New("wallet: provider error")
)

// Envelope is one transaction or read-only call handed to the provider.
// Request-scoped; built fresh per submission and never stored.
type Envelope struct {
	From     common.Address
	To       *common.Address
	Value    *big.Int
	Data     []byte
	Gas      uint64
	GasPrice *big.Int
}

// Provider is the minimal wallet request surface the core depends on.
type Provider interface {
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	SendTransaction(ctx context.Context, env Envelope) (common.Hash, error)
	Call(ctx context.Context, env Envelope) ([]byte, error)
}

// Session holds the connected account identity. Lifecycle is
// disconnected -> connected; there is no automatic reconnection.
type Session struct {
	provider Provider

	mu        sync.RWMutex
	account   common.Address
	connected bool
}

func NewSession(provider Provider) *Session {
	return &Session{provider: provider}
}

// Connect requests account access and makes the primary account the active
// session identity. On failure the session stays disconnected.
func (s *Session) Connect(ctx context.Context) (common.Address, error) {
	accounts, err := s.provider.RequestAccounts(ctx)
	if err != nil {
		return common.Address{}, err
	}
	if len(accounts) == 0 {
		return common.Address{}, ErrUnavailable
	}

	s.mu.Lock()
	s.account = accounts[0]
	s.connected = true
	s.mu.Unlock()

	return accounts[0], nil
}

// ActiveAccount returns the connected account, if any. Callers snapshot this
// once at flow start and use the snapshot throughout the flow.
func (s *Session) ActiveAccount() (common.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account, s.connected
}

// Disconnect clears the session identity.
func (s *Session) Disconnect() {
	s.mu.Lock()
	s.account = common.Address{}
	s.connected = false
	s.mu.Unlock()
}

func (s *Session) Provider() Provider { return s.provider }
