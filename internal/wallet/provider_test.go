package wallet

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeWireFormat(t *testing.T) {
	to := common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")
	env := Envelope{
		From:     common.HexToAddress("0x2222222222222222222222222222222222222222"),
		To:       &to,
		Value:    big.NewInt(100000000000000000), // 0.1 ETH
		Data:     []byte{0x7f, 0xf3, 0x6a, 0xb5},
		Gas:      3000000,
		GasPrice: big.NewInt(1000000000), // 1 gwei
	}

	raw, err := json.Marshal(toTxArgs(env))
	require.NoError(t, err)

	s := string(raw)
	assert.Contains(t, s, `"from":"0x2222222222222222222222222222222222222222"`)
	assert.Contains(t, s, `"to":"0x7a250d5630b4cf539739df2c5dacb4c659f2488d"`)
	assert.Contains(t, s, `"value":"0x16345785d8a0000"`)
	assert.Contains(t, s, `"data":"0x7ff36ab5"`)
	assert.Contains(t, s, `"gas":"0x2dc6c0"`)
	assert.Contains(t, s, `"gasPrice":"0x3b9aca00"`)
}

func TestEnvelopeWireFormatOmitsEmpty(t *testing.T) {
	to := common.HexToAddress("0x1111111111111111111111111111111111111111")
	raw, err := json.Marshal(toTxArgs(Envelope{
		From: common.HexToAddress("0x2222222222222222222222222222222222222222"),
		To:   &to,
		Data: []byte{0x70, 0xa0, 0x82, 0x31},
	}))
	require.NoError(t, err)

	s := string(raw)
	assert.NotContains(t, s, "value")
	assert.NotContains(t, s, "gasPrice")
}
