package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	TELEGRAM_TOKEN   string `yaml:"TELEGRAM_TOKEN"`
	TELEGRAM_CHAT_ID int64  `yaml:"TELEGRAM_CHAT_ID"`

	// Wallet provider endpoint (node or wallet daemon speaking
	// eth_requestAccounts / eth_sendTransaction / eth_call)
	RPC_URL string `yaml:"RPC_URL"`
	NETWORK string `yaml:"NETWORK"` // "ethereum" | "sepolia" | "bsc"

	// Trade defaults, overridable per command
	DEFAULT_BUY_AMOUNT string `yaml:"DEFAULT_BUY_AMOUNT"` // in ETH
	DEFAULT_SLIPPAGE   string `yaml:"DEFAULT_SLIPPAGE"`   // percent, e.g. "0.5"
	DEFAULT_GAS_GWEI   string `yaml:"DEFAULT_GAS_GWEI"`   // priority gas price
	MAX_GAS_PRICE_GWEI string `yaml:"MAX_GAS_PRICE_GWEI"`

	DEBUG bool `yaml:"DEBUG"`
}

const DefaultPath = "config.yml"

func Default() *Config {
	return &Config{
		TELEGRAM_TOKEN:   "",
		TELEGRAM_CHAT_ID: 0,

		RPC_URL: "http://127.0.0.1:8545",
		NETWORK: "sepolia",

		DEFAULT_BUY_AMOUNT: "0.1",
		DEFAULT_SLIPPAGE:   "0.5",
		DEFAULT_GAS_GWEI:   "1",
		MAX_GAS_PRICE_GWEI: "100",

		DEBUG: false,
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		c.TELEGRAM_TOKEN = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.TELEGRAM_CHAT_ID = id
		}
	}
	if v := os.Getenv("RPC_URL"); v != "" {
		c.RPC_URL = v
	}
	if v := os.Getenv("NETWORK"); v != "" {
		c.NETWORK = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		c.DEBUG = v == "true" || v == "1"
	}
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	// create if missing
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("create default config: %w", err)
		}
		cfg.applyEnvOverrides()
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TELEGRAM_TOKEN == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required (set in config.yml or TELEGRAM_TOKEN env)")
	}
	if c.RPC_URL == "" {
		return fmt.Errorf("RPC_URL is required")
	}
	return nil
}

func Save(path string, cfg *Config) error {
	if path == "" {
		path = DefaultPath
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}
