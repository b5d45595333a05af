package helpers

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ValidateAddress checks that a user-supplied address is well formed
// and not the zero address.
func ValidateAddress(address string) (common.Address, error) {
	if !common.IsHexAddress(address) {
		return common.Address{}, fmt.Errorf("invalid address format: %s", address)
	}

	addr := common.HexToAddress(address)
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("zero address not allowed")
	}
	return addr, nil
}

// ValidateAmount checks that an amount is positive and within reasonable bounds.
func ValidateAmount(amount *big.Int) error {
	if amount == nil {
		return fmt.Errorf("amount is nil")
	}
	if amount.Sign() <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	// Max reasonable amount (1 million ETH)
	maxAmount := new(big.Int).Mul(big.NewInt(1000000), big.NewInt(1e18))
	if amount.Cmp(maxAmount) > 0 {
		return fmt.Errorf("amount exceeds maximum allowed")
	}
	return nil
}

// ValidateGasPrice ensures a gas price is positive and below the max, if set.
func ValidateGasPrice(gasPrice, maxGasPrice *big.Int) error {
	if gasPrice == nil {
		return fmt.Errorf("gas price is nil")
	}
	if gasPrice.Sign() <= 0 {
		return fmt.Errorf("gas price must be positive")
	}
	if maxGasPrice != nil && gasPrice.Cmp(maxGasPrice) > 0 {
		return fmt.Errorf("gas price exceeds maximum: %s > %s gwei",
			WeiToGwei(gasPrice), WeiToGwei(maxGasPrice))
	}
	return nil
}
