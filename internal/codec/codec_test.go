package codec

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	router = common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")
	weth   = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	token  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	owner  = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func TestSelectors(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	// Well-known 4-byte selectors for the supported surface.
	tests := map[Func]string{
		FuncBalanceOf:             "70a08231",
		FuncApprove:               "095ea7b3",
		FuncSwapExactETHForTokens: "7ff36ab5",
		FuncSwapExactTokensForETH: "18cbafe5",
		FuncGetAmountsOut:         "d06ca61f",
	}

	for fn, want := range tests {
		sel, err := c.Selector(fn)
		require.NoError(t, err)
		assert.Equal(t, want, hex.EncodeToString(sel[:]), string(fn))
	}
}

func TestEncodeDeterministic(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	args := []interface{}{
		big.NewInt(0),
		[]common.Address{weth, token},
		owner,
		big.NewInt(1_700_000_000),
	}

	first, err := c.Encode(FuncSwapExactETHForTokens, args...)
	require.NoError(t, err)
	second, err := c.Encode(FuncSwapExactETHForTokens, args...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "7ff36ab5", hex.EncodeToString(first[:4]))
}

func TestEncodeApprove(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	data, err := c.Encode(FuncApprove, router, big.NewInt(500))
	require.NoError(t, err)

	// selector + two 32-byte words
	require.Len(t, data, 4+64)
	assert.Equal(t, "095ea7b3", hex.EncodeToString(data[:4]))
	assert.Equal(t, common.LeftPadBytes(router.Bytes(), 32), data[4:36])
	assert.Equal(t, common.LeftPadBytes(big.NewInt(500).Bytes(), 32), data[36:68])
}

func TestEncodeArgumentMismatch(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	// wrong arity
	_, err = c.Encode(FuncApprove, router)
	assert.ErrorIs(t, err, ErrArgumentMismatch)

	// wrong type
	_, err = c.Encode(FuncApprove, router, "500")
	assert.ErrorIs(t, err, ErrArgumentMismatch)

	// unknown function
	_, err = c.Encode(Func("transferFrom"), router, router, big.NewInt(1))
	assert.ErrorIs(t, err, ErrArgumentMismatch)
}

func TestUnpackBalance(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	balance, err := c.UnpackBalance(common.LeftPadBytes(big.NewInt(500).Bytes(), 32))
	require.NoError(t, err)
	assert.Equal(t, "500", balance.String())

	// empty result reads as zero
	balance, err = c.UnpackBalance(nil)
	require.NoError(t, err)
	assert.Equal(t, "0", balance.String())
}

func TestUnpackAmounts(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	parsed, err := abi.JSON(strings.NewReader(RouterABI))
	require.NoError(t, err)
	encoded, err := parsed.Methods["getAmountsOut"].Outputs.Pack(
		[]*big.Int{big.NewInt(100), big.NewInt(42000)})
	require.NoError(t, err)

	amounts, err := c.UnpackAmounts(encoded)
	require.NoError(t, err)
	require.Len(t, amounts, 2)
	assert.Equal(t, "100", amounts[0].String())
	assert.Equal(t, "42000", amounts[1].String())
}
