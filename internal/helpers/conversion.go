package helpers

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

var (
	weiPerEth  = decimal.New(1, 18) // 10^18
	weiPerGwei = decimal.New(1, 9)  // 10^9
)

// EthToWei converts a decimal ETH amount string ("0.1") to wei.
// Parsing is exact; no float64 round trip.
func EthToWei(ethStr string) (*big.Int, error) {
	ethStr = strings.ToLower(strings.TrimSpace(ethStr))
	ethStr = strings.TrimSpace(strings.TrimSuffix(ethStr, "eth"))
	if ethStr == "" {
		return nil, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(ethStr)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %s", ethStr)
	}
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	wei := amount.Mul(weiPerEth)
	if !wei.IsInteger() {
		return nil, fmt.Errorf("amount has more than 18 decimal places: %s", ethStr)
	}
	return wei.BigInt(), nil
}

// GweiToWei converts a decimal gwei string ("1", "2.5") to wei.
// Sub-wei precision is truncated.
func GweiToWei(gweiStr string) (*big.Int, error) {
	gweiStr = strings.TrimSpace(gweiStr)
	if gweiStr == "" {
		return nil, fmt.Errorf("empty gwei amount")
	}

	gwei, err := decimal.NewFromString(gweiStr)
	if err != nil {
		return nil, fmt.Errorf("invalid gwei amount: %s", gweiStr)
	}
	if gwei.Sign() <= 0 {
		return nil, fmt.Errorf("gwei amount must be positive")
	}

	return gwei.Mul(weiPerGwei).BigInt(), nil
}

// ParseSlippageBps parses a decimal percentage ("0.5") into basis points.
func ParseSlippageBps(pctStr string) (int64, error) {
	pctStr = strings.TrimSpace(strings.TrimSuffix(pctStr, "%"))
	if pctStr == "" {
		return 0, fmt.Errorf("empty slippage")
	}

	pct, err := decimal.NewFromString(pctStr)
	if err != nil {
		return 0, fmt.Errorf("invalid slippage: %s", pctStr)
	}

	bps := pct.Mul(decimal.New(100, 0)).Round(0).IntPart()
	if bps < 0 || bps > 5000 {
		return 0, fmt.Errorf("slippage must be between 0 and 50 percent")
	}
	return bps, nil
}

// ApplySlippageBps floors amount by the given basis points:
// amount * (10000 - bps) / 10000.
func ApplySlippageBps(amount *big.Int, bps int64) *big.Int {
	if amount == nil || bps <= 0 {
		return amount
	}
	out := new(big.Int).Mul(amount, big.NewInt(10000-bps))
	return out.Div(out, big.NewInt(10000))
}

// FormatEth renders a wei amount as ETH for display.
func FormatEth(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	eth := decimal.NewFromBigInt(wei, -18)
	switch {
	case eth.LessThan(decimal.New(1, -4)):
		return eth.StringFixed(8)
	case eth.LessThan(decimal.New(1, 0)):
		return eth.StringFixed(6)
	default:
		return eth.StringFixed(4)
	}
}

// WeiToGwei renders a wei amount as whole gwei.
func WeiToGwei(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return new(big.Int).Div(wei, big.NewInt(1e9)).String()
}

// FormatTokenAmount renders a raw token amount with the given decimals.
func FormatTokenAmount(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}

// FormatAddress shortens an address for display.
func FormatAddress(addr common.Address) string {
	hex := addr.Hex()
	return hex[:6] + "..." + hex[len(hex)-4:]
}

// FormatTxHash shortens a transaction hash for display.
func FormatTxHash(hash common.Hash) string {
	hex := hash.Hex()
	return hex[:10] + "..." + hex[len(hex)-6:]
}
