// Package codec encodes calls for the closed set of contract functions the
// bot is allowed to send: the V2 router swap surface and the minimal ERC-20
// surface. Anything outside this set cannot be encoded, and argument tuples
// are validated against the declared signature before packing.
package codec

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ErrArgumentMismatch is returned when the argument tuple does not match the
// declared signature, either in arity or in type.
var ErrArgumentMismatch = errors.New("codec: argument mismatch")

// Func identifies one supported contract function.
type Func string

const (
	FuncBalanceOf             Func = "balanceOf"
	FuncApprove               Func = "approve"
	FuncSwapExactETHForTokens Func = "swapExactETHForTokens"
	FuncSwapExactTokensForETH Func = "swapExactTokensForETH"
	FuncGetAmountsOut         Func = "getAmountsOut"
)

// ABIs (minimal fragments)
const (
	RouterABI = `[
		{"inputs":[
			{"internalType":"uint256","name":"amountOutMin","type":"uint256"},
			{"internalType":"address[]","name":"path","type":"address[]"},
			{"internalType":"address","name":"to","type":"address"},
			{"internalType":"uint256","name":"deadline","type":"uint256"}],
		 "name":"swapExactETHForTokens",
		 "outputs":[{"internalType":"uint256[]","name":"amounts","type":"uint256[]"}],
		 "stateMutability":"payable","type":"function"},

		{"inputs":[
			{"internalType":"uint256","name":"amountIn","type":"uint256"},
			{"internalType":"uint256","name":"amountOutMin","type":"uint256"},
			{"internalType":"address[]","name":"path","type":"address[]"},
			{"internalType":"address","name":"to","type":"address"},
			{"internalType":"uint256","name":"deadline","type":"uint256"}],
		 "name":"swapExactTokensForETH",
		 "outputs":[{"internalType":"uint256[]","name":"amounts","type":"uint256[]"}],
		 "stateMutability":"nonpayable","type":"function"},

		{"inputs":[
			{"internalType":"uint256","name":"amountIn","type":"uint256"},
			{"internalType":"address[]","name":"path","type":"address[]"}],
		 "name":"getAmountsOut",
		 "outputs":[{"internalType":"uint256[]","name":"amounts","type":"uint256[]"}],
		 "stateMutability":"view","type":"function"}
	]`

	ERC20ABI = `[
		{"constant":true,
		 "inputs":[{"name":"_owner","type":"address"}],
		 "name":"balanceOf",
		 "outputs":[{"name":"","type":"uint256"}],
		 "type":"function"},

		{"constant":false,
		 "inputs":[
			{"name":"_spender","type":"address"},
			{"name":"_value","type":"uint256"}],
		 "name":"approve",
		 "outputs":[{"name":"","type":"bool"}],
		 "type":"function"}
	]`
)

// Codec holds the parsed ABI fragments and the supported-function table.
type Codec struct {
	methods map[Func]abi.Method
}

func New() (*Codec, error) {
	router, err := abi.JSON(strings.NewReader(RouterABI))
	if err != nil {
		return nil, fmt.Errorf("parse router ABI: %w", err)
	}
	erc20, err := abi.JSON(strings.NewReader(ERC20ABI))
	if err != nil {
		return nil, fmt.Errorf("parse ERC20 ABI: %w", err)
	}

	methods := make(map[Func]abi.Method)
	for name, m := range erc20.Methods {
		methods[Func(name)] = m
	}
	for name, m := range router.Methods {
		methods[Func(name)] = m
	}
	return &Codec{methods: methods}, nil
}

// Encode packs a call to one of the supported functions. Pure and
// deterministic; identical inputs always yield identical bytes.
func (c *Codec) Encode(fn Func, args ...interface{}) ([]byte, error) {
	m, ok := c.methods[fn]
	if !ok {
		return nil, fmt.Errorf("%w: unknown function %q", ErrArgumentMismatch, fn)
	}
	if len(args) != len(m.Inputs) {
		return nil, fmt.Errorf("%w: %s takes %d args, got %d",
			ErrArgumentMismatch, fn, len(m.Inputs), len(args))
	}

	packed, err := m.Inputs.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArgumentMismatch, fn, err)
	}
	return append(m.ID, packed...), nil
}

// Selector returns the 4-byte function selector.
func (c *Codec) Selector(fn Func) ([4]byte, error) {
	m, ok := c.methods[fn]
	if !ok {
		return [4]byte{}, fmt.Errorf("%w: unknown function %q", ErrArgumentMismatch, fn)
	}
	var sel [4]byte
	copy(sel[:], m.ID)
	return sel, nil
}

// UnpackBalance decodes a balanceOf call result.
func (c *Codec) UnpackBalance(data []byte) (*big.Int, error) {
	if len(data) == 0 {
		return big.NewInt(0), nil
	}
	out, err := c.methods[FuncBalanceOf].Outputs.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpack balanceOf: %w", err)
	}
	return abi.ConvertType(out[0], new(big.Int)).(*big.Int), nil
}

// UnpackAmounts decodes a getAmountsOut call result.
func (c *Codec) UnpackAmounts(data []byte) ([]*big.Int, error) {
	out, err := c.methods[FuncGetAmountsOut].Outputs.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpack getAmountsOut: %w", err)
	}
	amounts := abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int)
	return *amounts, nil
}
