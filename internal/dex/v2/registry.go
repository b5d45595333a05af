package v2

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

type Network string

const (
	Ethereum Network = "ethereum"
	Sepolia  Network = "sepolia"
	BSC      Network = "bsc"
	Base     Network = "base"
)

// Config pins the V2 router and wrapped-native token for one network.
type Config struct {
	Network Network
	Router  common.Address
	WETH    common.Address
	ChainID int64
}

// Presets for the networks the bot knows how to trade on. The swap path base
// leg is always the network's wrapped native token.
var presets = map[Network]Config{
	Ethereum: {
		Network: Ethereum,
		Router:  common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"), // Uniswap V2
		WETH:    common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
		ChainID: 1,
	},
	Sepolia: {
		Network: Sepolia,
		Router:  common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"), // Uniswap V2
		WETH:    common.HexToAddress("0x7b79995e5f793A07Bc00c21412e50Ecae098E7f9"),
		ChainID: 11155111,
	},
	BSC: {
		Network: BSC,
		Router:  common.HexToAddress("0x10ED43C718714eb63d5aA57B78B54704E256024E"), // Pancake V2
		WETH:    common.HexToAddress("0xBB4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c"), // WBNB
		ChainID: 56,
	},
}

// Registry resolves the active network's router and WETH addresses.
type Registry struct {
	mu  sync.RWMutex
	cfg Config
}

func NewRegistry(network Network) (*Registry, error) {
	cfg, ok := presets[network]
	if !ok {
		return nil, fmt.Errorf("unknown network: %s", network)
	}
	return &Registry{cfg: cfg}, nil
}

func (r *Registry) Router() common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg.Router
}

func (r *Registry) WETH() common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg.WETH
}

func (r *Registry) ChainID() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg.ChainID
}

func (r *Registry) Config() Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}

// Update swaps the active network config, e.g. when the operator switches nets.
func (r *Registry) Update(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.cfg = cfg
	r.mu.Unlock()
	return nil
}

func (cfg Config) Validate() error {
	if (cfg.Router == (common.Address{})) || (cfg.WETH == (common.Address{})) {
		return fmt.Errorf("v2.Config: router/WETH must be set")
	}
	return nil
}
