// Package trade sequences swap flows against the V2 router: parameter
// building, call encoding, and submission through the wallet session.
package trade

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/primefeed/snipebot/internal/codec"
	v2 "github.com/primefeed/snipebot/internal/dex/v2"
	"github.com/primefeed/snipebot/internal/helpers"
	"github.com/primefeed/snipebot/internal/swap"
	"github.com/primefeed/snipebot/internal/wallet"
)

// Engine runs buy and sell flows. The two flows are independent and may be
// invoked concurrently; each invocation runs its steps strictly in order
// with its own account snapshot.
type Engine struct {
	session   *wallet.Session
	codec     *codec.Codec
	dex       *v2.Registry
	submitter *Submitter

	maxGasPrice *big.Int // nil = no ceiling

	positionsMu sync.RWMutex
	positions   map[common.Address]*Position
}

// Position records a completed buy that has not been sold yet.
type Position struct {
	Token     common.Address
	EthSpent  *big.Int
	EntryTime time.Time
	TxHash    common.Hash
}

func NewEngine(session *wallet.Session, c *codec.Codec, dex *v2.Registry) *Engine {
	return &Engine{
		session:   session,
		codec:     c,
		dex:       dex,
		submitter: NewSubmitter(session.Provider()),
		positions: make(map[common.Address]*Position),
	}
}

func (e *Engine) Session() *wallet.Session { return e.session }

// SetMaxGasPrice caps the user-supplied gas priority, in wei.
func (e *Engine) SetMaxGasPrice(p *big.Int) { e.maxGasPrice = p }

func (e *Engine) gasPrice(priorityGwei string) (*big.Int, error) {
	gasPrice, err := helpers.GweiToWei(priorityGwei)
	if err != nil {
		return nil, fmt.Errorf("%w: gas priority: %v", swap.ErrInvalidAmount, err)
	}
	if err := helpers.ValidateGasPrice(gasPrice, e.maxGasPrice); err != nil {
		return nil, fmt.Errorf("%w: gas priority: %v", swap.ErrInvalidAmount, err)
	}
	return gasPrice, nil
}

// tokenBalance reads balanceOf(owner) on the token contract. Read-only
// call, not a transaction.
func (e *Engine) tokenBalance(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	data, err := e.codec.Encode(codec.FuncBalanceOf, owner)
	if err != nil {
		return nil, err
	}

	result, err := e.session.Provider().Call(ctx, wallet.Envelope{
		From: owner,
		To:   &token,
		Data: data,
	})
	if err != nil {
		return nil, err
	}
	return e.codec.UnpackBalance(result)
}

// applyQuote asks the router for the expected output of params.AmountIn
// along params.Path and floors AmountOutMin by the slippage tolerance.
func (e *Engine) applyQuote(ctx context.Context, from common.Address, params *swap.CallParameters) error {
	data, err := e.codec.Encode(codec.FuncGetAmountsOut, params.AmountIn, params.Path.Slice())
	if err != nil {
		return err
	}

	router := e.dex.Router()
	result, err := e.session.Provider().Call(ctx, wallet.Envelope{
		From: from,
		To:   &router,
		Data: data,
	})
	if err != nil {
		return err
	}

	amounts, err := e.codec.UnpackAmounts(result)
	if err != nil {
		return err
	}
	if len(amounts) < 2 {
		return fmt.Errorf("%w: short getAmountsOut result", wallet.ErrProvider)
	}
	return params.ApplyQuote(amounts[len(amounts)-1])
}

func (e *Engine) trackPosition(token common.Address, ethSpent *big.Int, txHash common.Hash) {
	e.positionsMu.Lock()
	defer e.positionsMu.Unlock()

	e.positions[token] = &Position{
		Token:     token,
		EthSpent:  ethSpent,
		EntryTime: time.Now(),
		TxHash:    txHash,
	}
}

// closePosition drops the record once the full balance is sold.
func (e *Engine) closePosition(token common.Address) {
	e.positionsMu.Lock()
	defer e.positionsMu.Unlock()
	delete(e.positions, token)
}

// Positions returns a snapshot of open positions.
func (e *Engine) Positions() []Position {
	e.positionsMu.RLock()
	defer e.positionsMu.RUnlock()

	out := make([]Position, 0, len(e.positions))
	for _, p := range e.positions {
		out = append(out, *p)
	}
	return out
}
