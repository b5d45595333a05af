package trade

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/primefeed/snipebot/internal/codec"
	"github.com/primefeed/snipebot/internal/helpers"
	"github.com/primefeed/snipebot/internal/swap"
	"github.com/primefeed/snipebot/internal/telemetry"
	"github.com/primefeed/snipebot/internal/wallet"
)

var (
	// ErrMissingInput means required user input was absent; no wallet
	// interaction happens in that case.
	ErrMissingInput = errors.New("trade: missing input")
	// ErrNotConnected means no wallet session is active.
	ErrNotConnected = errors.New("trade: wallet not connected")
)

// State names one step of a flow invocation. Transitions are strictly
// linear; every failure is terminal for the invocation and leaves the
// engine idle.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateQuerying
	StateApproving
	StateQuoting
	StateEncoding
	StateSubmitting
	StateSucceeded
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:       "idle",
	StateValidating: "validating",
	StateQuerying:   "querying",
	StateApproving:  "approving",
	StateQuoting:    "quoting",
	StateEncoding:   "encoding",
	StateSubmitting: "submitting",
	StateSucceeded:  "succeeded",
	StateFailed:     "failed",
}

func (s State) String() string { return stateNames[s] }

// flow tracks one invocation: the account snapshot taken at start and the
// approve precondition for the sell path. Never shared across invocations.
type flow struct {
	name     string
	state    State
	account  common.Address
	approved bool
}

func (f *flow) enter(next State) {
	telemetry.Debugf("[trade] %s flow: %s -> %s", f.name, f.state, next)
	f.state = next
}

func (f *flow) fail(err error) error {
	f.enter(StateFailed)
	telemetry.Errorf("[trade] %s flow failed: %v", f.name, err)
	return err
}

// Buy swaps native currency for the target token:
// validating -> quoting -> encoding -> submitting.
func (e *Engine) Buy(ctx context.Context, req swap.Request) (common.Hash, error) {
	account, ok := e.session.ActiveAccount()
	if !ok {
		return common.Hash{}, ErrNotConnected
	}
	f := &flow{name: "buy", account: account}

	f.enter(StateValidating)
	if req.TokenAddress == "" || req.AmountNative == "" {
		return common.Hash{}, f.fail(fmt.Errorf("%w: token address and amount are required", ErrMissingInput))
	}
	params, err := swap.BuildBuyParams(req, f.account, e.dex.WETH())
	if err != nil {
		return common.Hash{}, f.fail(err)
	}
	gasPrice, err := e.gasPrice(req.GasPriorityGwei)
	if err != nil {
		return common.Hash{}, f.fail(err)
	}

	f.enter(StateQuoting)
	if err := e.applyQuote(ctx, f.account, &params); err != nil {
		return common.Hash{}, f.fail(fmt.Errorf("quote: %w", err))
	}

	f.enter(StateEncoding)
	data, err := e.codec.Encode(codec.FuncSwapExactETHForTokens,
		params.AmountOutMin, params.Path.Slice(), params.Recipient, params.Deadline)
	if err != nil {
		return common.Hash{}, f.fail(err)
	}

	f.enter(StateSubmitting)
	router := e.dex.Router()
	hash, err := e.submitter.Submit(ctx, wallet.Envelope{
		From:     f.account,
		To:       &router,
		Value:    params.AmountIn,
		Data:     data,
		Gas:      SwapGasLimit,
		GasPrice: gasPrice,
	})
	if err != nil {
		return common.Hash{}, f.fail(err)
	}

	f.enter(StateSucceeded)
	e.trackPosition(params.Path[1], params.AmountIn, hash)
	telemetry.Infof("[trade] buy executed: token=%s amountIn=%s tx=%s",
		params.Path[1].Hex(), params.AmountIn.String(), hash.Hex())
	return hash, nil
}

// Sell swaps the full token balance back to native currency:
// validating -> querying -> approving -> quoting -> encoding -> submitting.
// The swap is never encoded, let alone submitted, unless the approval in
// this same invocation went through.
func (e *Engine) Sell(ctx context.Context, req swap.Request) (common.Hash, error) {
	account, ok := e.session.ActiveAccount()
	if !ok {
		return common.Hash{}, ErrNotConnected
	}
	f := &flow{name: "sell", account: account}

	f.enter(StateValidating)
	if req.TokenAddress == "" {
		return common.Hash{}, f.fail(fmt.Errorf("%w: token address is required", ErrMissingInput))
	}
	gasPrice, err := e.gasPrice(req.GasPriorityGwei)
	if err != nil {
		return common.Hash{}, f.fail(err)
	}

	f.enter(StateQuerying)
	token, err := helpers.ValidateAddress(req.TokenAddress)
	if err != nil {
		return common.Hash{}, f.fail(fmt.Errorf("%w: %v", swap.ErrInvalidAddress, err))
	}
	balance, err := e.tokenBalance(ctx, token, f.account)
	if err != nil {
		return common.Hash{}, f.fail(fmt.Errorf("balance query: %w", err))
	}
	params, err := swap.BuildSellParams(req.TokenAddress, balance, f.account, e.dex.WETH(), req.SlippagePercent)
	if err != nil {
		return common.Hash{}, f.fail(err)
	}

	f.enter(StateApproving)
	if err := e.approve(ctx, f, token, params.AmountIn, gasPrice); err != nil {
		return common.Hash{}, f.fail(fmt.Errorf("approve: %w", err))
	}

	f.enter(StateQuoting)
	if err := e.applyQuote(ctx, f.account, &params); err != nil {
		return common.Hash{}, f.fail(fmt.Errorf("quote: %w", err))
	}

	// Precondition checked on its own, not implied by falling through the
	// approve step above.
	if !f.approved {
		return common.Hash{}, f.fail(errors.New("trade: swap attempted without approval"))
	}

	f.enter(StateEncoding)
	data, err := e.codec.Encode(codec.FuncSwapExactTokensForETH,
		params.AmountIn, params.AmountOutMin, params.Path.Slice(), params.Recipient, params.Deadline)
	if err != nil {
		return common.Hash{}, f.fail(err)
	}

	f.enter(StateSubmitting)
	router := e.dex.Router()
	hash, err := e.submitter.Submit(ctx, wallet.Envelope{
		From:     f.account,
		To:       &router,
		Data:     data,
		Gas:      SwapGasLimit,
		GasPrice: gasPrice,
	})
	if err != nil {
		return common.Hash{}, f.fail(err)
	}

	f.enter(StateSucceeded)
	e.closePosition(token)
	telemetry.Infof("[trade] sell executed: token=%s amountIn=%s tx=%s",
		token.Hex(), params.AmountIn.String(), hash.Hex())
	return hash, nil
}

// approve submits the spend approval for the router and marks the flow
// approved only on wallet acknowledgement.
func (e *Engine) approve(ctx context.Context, f *flow, token common.Address, amount *big.Int, gasPrice *big.Int) error {
	router := e.dex.Router()
	data, err := e.codec.Encode(codec.FuncApprove, router, amount)
	if err != nil {
		return err
	}

	hash, err := e.submitter.Submit(ctx, wallet.Envelope{
		From:     f.account,
		To:       &token,
		Data:     data,
		Gas:      ApproveGasLimit,
		GasPrice: gasPrice,
	})
	if err != nil {
		return err
	}

	f.approved = true
	telemetry.Debugf("[trade] approval submitted: token=%s amount=%s tx=%s",
		token.Hex(), amount.String(), hash.Hex())
	return nil
}
