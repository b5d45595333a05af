package helpers

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEthToWei(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "tenth of an eth", in: "0.1", want: "100000000000000000"},
		{name: "one eth", in: "1", want: "1000000000000000000"},
		{name: "whitespace and suffix", in: " 2.5 ETH ", want: "2500000000000000000"},
		{name: "full precision", in: "0.000000000000000001", want: "1"},
		{name: "empty", in: "", wantErr: true},
		{name: "garbage", in: "abc", wantErr: true},
		{name: "zero", in: "0", wantErr: true},
		{name: "negative", in: "-1", wantErr: true},
		{name: "too many decimals", in: "0.0000000000000000001", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EthToWei(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestGweiToWei(t *testing.T) {
	got, err := GweiToWei("1")
	require.NoError(t, err)
	assert.Equal(t, "1000000000", got.String())

	got, err = GweiToWei("2.5")
	require.NoError(t, err)
	assert.Equal(t, "2500000000", got.String())

	_, err = GweiToWei("")
	assert.Error(t, err)
	_, err = GweiToWei("0")
	assert.Error(t, err)
}

func TestParseSlippageBps(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "0.5", want: 50},
		{in: "1", want: 100},
		{in: "10%", want: 1000},
		{in: "0", want: 0},
		{in: "50", want: 5000},
		{in: "51", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseSlippageBps(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestApplySlippageBps(t *testing.T) {
	amount := big.NewInt(1000000)

	assert.Equal(t, "995000", ApplySlippageBps(amount, 50).String())
	assert.Equal(t, "900000", ApplySlippageBps(amount, 1000).String())
	// zero bps leaves the amount untouched
	assert.Equal(t, "1000000", ApplySlippageBps(amount, 0).String())
	assert.Nil(t, ApplySlippageBps(nil, 50))
}

func TestValidateAddress(t *testing.T) {
	addr, err := ValidateAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")
	require.NoError(t, err)
	assert.Equal(t, "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D", addr.Hex())

	_, err = ValidateAddress("0xToken")
	assert.Error(t, err)
	_, err = ValidateAddress("")
	assert.Error(t, err)
	_, err = ValidateAddress("0x0000000000000000000000000000000000000000")
	assert.Error(t, err)
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(big.NewInt(1)))
	assert.Error(t, ValidateAmount(nil))
	assert.Error(t, ValidateAmount(big.NewInt(0)))
	assert.Error(t, ValidateAmount(big.NewInt(-5)))

	tooMuch := new(big.Int).Mul(big.NewInt(2000000), big.NewInt(1e18))
	assert.Error(t, ValidateAmount(tooMuch))
}

func TestFormatEth(t *testing.T) {
	assert.Equal(t, "0.100000", FormatEth(big.NewInt(1e17)))
	assert.Equal(t, "1.0000", FormatEth(big.NewInt(1e18)))
	assert.Equal(t, "0", FormatEth(nil))
}
