package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/primefeed/snipebot/internal/telemetry"
)

// EIP-1193: the user rejected the request.
const codeUserRejected = 4001

// RPCProvider speaks the wallet surface over a JSON-RPC endpoint
// (eth_requestAccounts / eth_sendTransaction / eth_call).
type RPCProvider struct {
	client *rpc.Client
}

func Dial(ctx context.Context, rawURL string) (*RPCProvider, error) {
	client, err := rpc.DialContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrUnavailable, rawURL, err)
	}
	return &RPCProvider{client: client}, nil
}

func NewRPCProvider(client *rpc.Client) *RPCProvider {
	return &RPCProvider{client: client}
}

// txArgs is the JSON shape of an envelope on the wire.
type txArgs struct {
	From     common.Address  `json:"from"`
	To       *common.Address `json:"to,omitempty"`
	Value    *hexutil.Big    `json:"value,omitempty"`
	Data     hexutil.Bytes   `json:"data,omitempty"`
	Gas      hexutil.Uint64  `json:"gas,omitempty"`
	GasPrice *hexutil.Big    `json:"gasPrice,omitempty"`
}

func toTxArgs(env Envelope) txArgs {
	args := txArgs{
		From: env.From,
		To:   env.To,
		Data: env.Data,
		Gas:  hexutil.Uint64(env.Gas),
	}
	if env.Value != nil {
		args.Value = (*hexutil.Big)(env.Value)
	}
	if env.GasPrice != nil {
		args.GasPrice = (*hexutil.Big)(env.GasPrice)
	}
	return args
}

func (p *RPCProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	err := p.client.CallContext(ctx, &accounts, "eth_requestAccounts")
	if err != nil && isMethodNotFound(err) {
		// Plain nodes expose unlocked accounts via eth_accounts instead.
		telemetry.Debugf("[wallet] eth_requestAccounts unsupported, falling back to eth_accounts")
		err = p.client.CallContext(ctx, &accounts, "eth_accounts")
	}
	if err != nil {
		return nil, mapRPCError(err)
	}
	return accounts, nil
}

func (p *RPCProvider) SendTransaction(ctx context.Context, env Envelope) (common.Hash, error) {
	var hash common.Hash
	if err := p.client.CallContext(ctx, &hash, "eth_sendTransaction", toTxArgs(env)); err != nil {
		return common.Hash{}, mapRPCError(err)
	}
	return hash, nil
}

func (p *RPCProvider) Call(ctx context.Context, env Envelope) ([]byte, error) {
	var result hexutil.Bytes
	if err := p.client.CallContext(ctx, &result, "eth_call", toTxArgs(env), "latest"); err != nil {
		return nil, mapRPCError(err)
	}
	return result, nil
}

func (p *RPCProvider) Close() { p.client.Close() }

func mapRPCError(err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == codeUserRejected {
		return fmt.Errorf("%w: %v", ErrRejected, err)
	}
	return fmt.Errorf("%w: %v", ErrProvider, err)
}

func isMethodNotFound(err error) bool {
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr) && rpcErr.ErrorCode() == -32601
}
