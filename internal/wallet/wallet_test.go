package wallet

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	accounts    []common.Address
	accountsErr error
}

func (f *fakeProvider) RequestAccounts(context.Context) ([]common.Address, error) {
	return f.accounts, f.accountsErr
}

func (f *fakeProvider) SendTransaction(context.Context, Envelope) (common.Hash, error) {
	return common.Hash{}, nil
}

func (f *fakeProvider) Call(context.Context, Envelope) ([]byte, error) {
	return nil, nil
}

func TestSessionConnect(t *testing.T) {
	primary := common.HexToAddress("0x2222222222222222222222222222222222222222")
	secondary := common.HexToAddress("0x3333333333333333333333333333333333333333")

	s := NewSession(&fakeProvider{accounts: []common.Address{primary, secondary}})

	_, connected := s.ActiveAccount()
	assert.False(t, connected)

	got, err := s.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, primary, got)

	active, connected := s.ActiveAccount()
	assert.True(t, connected)
	assert.Equal(t, primary, active)
}

func TestSessionConnectNoAccounts(t *testing.T) {
	s := NewSession(&fakeProvider{})

	_, err := s.Connect(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)

	_, connected := s.ActiveAccount()
	assert.False(t, connected)
}

func TestSessionConnectRejected(t *testing.T) {
	s := NewSession(&fakeProvider{accountsErr: ErrRejected})

	_, err := s.Connect(context.Background())
	assert.ErrorIs(t, err, ErrRejected)

	// rejection leaves the session disconnected
	_, connected := s.ActiveAccount()
	assert.False(t, connected)
}

func TestSessionDisconnect(t *testing.T) {
	primary := common.HexToAddress("0x2222222222222222222222222222222222222222")
	s := NewSession(&fakeProvider{accounts: []common.Address{primary}})

	_, err := s.Connect(context.Background())
	require.NoError(t, err)

	s.Disconnect()
	active, connected := s.ActiveAccount()
	assert.False(t, connected)
	assert.Equal(t, common.Address{}, active)
}
