package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/primefeed/snipebot/internal/codec"
	"github.com/primefeed/snipebot/internal/config"
	v2 "github.com/primefeed/snipebot/internal/dex/v2"
	"github.com/primefeed/snipebot/internal/helpers"
	"github.com/primefeed/snipebot/internal/telegram"
	"github.com/primefeed/snipebot/internal/telemetry"
	"github.com/primefeed/snipebot/internal/trade"
	"github.com/primefeed/snipebot/internal/wallet"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "snipebot",
		Short: "Telegram-driven DEX swap bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "config file path")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// .env first so config env overrides pick it up
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	telemetry.Start()
	defer telemetry.Stop()
	telemetry.EnableDebug(cfg.DEBUG)

	registry, err := v2.NewRegistry(v2.Network(cfg.NETWORK))
	if err != nil {
		return err
	}

	provider, err := wallet.Dial(ctx, cfg.RPC_URL)
	if err != nil {
		return err
	}
	defer provider.Close()

	c, err := codec.New()
	if err != nil {
		return err
	}

	engine := trade.NewEngine(wallet.NewSession(provider), c, registry)
	if cfg.MAX_GAS_PRICE_GWEI != "" {
		maxGas, err := helpers.GweiToWei(cfg.MAX_GAS_PRICE_GWEI)
		if err != nil {
			return fmt.Errorf("MAX_GAS_PRICE_GWEI: %w", err)
		}
		engine.SetMaxGasPrice(maxGas)
	}

	controller, err := telegram.NewController(cfg, engine)
	if err != nil {
		return err
	}

	telemetry.Infof("[main] snipebot up on %s (router %s)", cfg.NETWORK, registry.Router().Hex())

	if err := controller.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	telemetry.Infof("[main] shutting down")
	return nil
}
