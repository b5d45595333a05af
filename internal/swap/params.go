// Package swap turns user-supplied primitives into validated on-chain call
// parameters for the V2 router.
package swap

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/primefeed/snipebot/internal/helpers"
)

var (
	ErrInvalidAmount   = errors.New("swap: invalid amount")
	ErrInvalidAddress  = errors.New("swap: invalid address")
	ErrInvalidSlippage = errors.New("swap: invalid slippage")
	ErrMissingQuote    = errors.New("swap: missing output quote")
)

// DeadlineSeconds bounds how long the router may hold a swap before
// rejecting it.
const DeadlineSeconds = 1200

// Request carries the raw user inputs for one swap action. Immutable once
// handed to the builder.
type Request struct {
	TokenAddress    string
	AmountNative    string // ETH-denominated decimal string
	SlippagePercent string // decimal percent, e.g. "0.5"
	GasPriorityGwei string // decimal gwei
}

// Path is the fixed two-hop route: [WETH, token] on a buy,
// [token, WETH] on a sell.
type Path [2]common.Address

func (p Path) Slice() []common.Address { return []common.Address{p[0], p[1]} }

// CallParameters are the validated router-call arguments derived from one
// Request. AmountOutMin stays zero until ApplyQuote floors it from an
// expected-output quote.
type CallParameters struct {
	AmountIn     *big.Int
	AmountOutMin *big.Int
	Path         Path
	Recipient    common.Address
	Deadline     *big.Int
	SlippageBps  int64
}

// clock is swapped in tests.
var clock = time.Now

// BuildBuyParams derives buy parameters: spend req.AmountNative of the native
// currency on the target token.
func BuildBuyParams(req Request, account, weth common.Address) (CallParameters, error) {
	token, err := helpers.ValidateAddress(req.TokenAddress)
	if err != nil {
		return CallParameters{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	amountIn, err := helpers.EthToWei(req.AmountNative)
	if err != nil {
		return CallParameters{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if err := helpers.ValidateAmount(amountIn); err != nil {
		return CallParameters{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	bps, err := helpers.ParseSlippageBps(req.SlippagePercent)
	if err != nil {
		return CallParameters{}, fmt.Errorf("%w: %v", ErrInvalidSlippage, err)
	}

	return CallParameters{
		AmountIn:     amountIn,
		AmountOutMin: big.NewInt(0),
		Path:         Path{weth, token},
		Recipient:    account,
		Deadline:     deadline(),
		SlippageBps:  bps,
	}, nil
}

// BuildSellParams derives sell parameters: swap the full queried token
// balance back to the native currency.
func BuildSellParams(tokenAddress string, balance *big.Int, account, weth common.Address, slippagePercent string) (CallParameters, error) {
	token, err := helpers.ValidateAddress(tokenAddress)
	if err != nil {
		return CallParameters{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	if err := helpers.ValidateAmount(balance); err != nil {
		return CallParameters{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	bps, err := helpers.ParseSlippageBps(slippagePercent)
	if err != nil {
		return CallParameters{}, fmt.Errorf("%w: %v", ErrInvalidSlippage, err)
	}

	return CallParameters{
		AmountIn:     new(big.Int).Set(balance),
		AmountOutMin: big.NewInt(0),
		Path:         Path{token, weth},
		Recipient:    account,
		Deadline:     deadline(),
		SlippageBps:  bps,
	}, nil
}

// ApplyQuote floors AmountOutMin from the router's expected output for
// AmountIn along Path, reduced by the request's slippage tolerance.
func (p *CallParameters) ApplyQuote(expectedOut *big.Int) error {
	if expectedOut == nil || expectedOut.Sign() <= 0 {
		return ErrMissingQuote
	}
	p.AmountOutMin = helpers.ApplySlippageBps(new(big.Int).Set(expectedOut), p.SlippageBps)
	return nil
}

func deadline() *big.Int {
	return big.NewInt(clock().Unix() + DeadlineSeconds)
}
