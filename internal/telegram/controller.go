// Package telegram is the control surface. It binds raw command arguments,
// hands them to the trade engine, and relays success or failure back to the
// operator. All validation of the inputs themselves happens in the core.
package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/primefeed/snipebot/internal/config"
	"github.com/primefeed/snipebot/internal/helpers"
	"github.com/primefeed/snipebot/internal/swap"
	"github.com/primefeed/snipebot/internal/telemetry"
	"github.com/primefeed/snipebot/internal/trade"
)

type Controller struct {
	bot    *tgbotapi.BotAPI
	cfg    *config.Config
	engine *trade.Engine

	allowedChatID int64
}

func NewController(cfg *config.Config, engine *trade.Engine) (*Controller, error) {
	if cfg.TELEGRAM_TOKEN == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is empty")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.TELEGRAM_TOKEN)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	return &Controller{
		bot:           bot,
		cfg:           cfg,
		engine:        engine,
		allowedChatID: cfg.TELEGRAM_CHAT_ID,
	}, nil
}

func (c *Controller) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	_, _ = c.bot.Send(msg)
}

// Start runs the update loop until ctx is cancelled.
func (c *Controller) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := c.bot.GetUpdatesChan(u)

	telemetry.Infof("[telegram] controller started as @%s", c.bot.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			c.bot.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if c.allowedChatID != 0 && update.Message.Chat.ID != c.allowedChatID {
				telemetry.Warnf("[telegram] ignoring command from chat %d", update.Message.Chat.ID)
				continue
			}
			// Flows block on wallet confirmation dialogs, so each command
			// runs on its own goroutine and is cancelled with the loop.
			go c.handle(ctx, update.Message)
		}
	}
}

func (c *Controller) handle(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())

	switch msg.Command() {
	case "connect":
		c.cmdConnect(ctx, msg.Chat.ID)
	case "disconnect":
		c.engine.Session().Disconnect()
		c.reply(msg.Chat.ID, "Wallet disconnected.")
	case "buy":
		c.cmdBuy(ctx, msg.Chat.ID, args)
	case "sell":
		c.cmdSell(ctx, msg.Chat.ID, args)
	case "positions":
		c.cmdPositions(msg.Chat.ID)
	case "tail":
		c.reply(msg.Chat.ID, "```\n"+strings.Join(telemetry.Tail(20), "\n")+"\n```")
	case "help", "start":
		c.cmdHelp(msg.Chat.ID)
	default:
		c.reply(msg.Chat.ID, "Unknown command. Try /help")
	}
}

func (c *Controller) cmdConnect(ctx context.Context, chatID int64) {
	account, err := c.engine.Session().Connect(ctx)
	if err != nil {
		c.reply(chatID, fmt.Sprintf("❌ Connect failed: %v", err))
		return
	}
	c.reply(chatID, fmt.Sprintf("✅ Connected: `%s`", account.Hex()))
}

// /buy <token> [amountEth] [slippage%] [gasGwei]
func (c *Controller) cmdBuy(ctx context.Context, chatID int64, args []string) {
	if len(args) < 1 {
		c.reply(chatID, "Usage: /buy <token> [amountEth] [slippage%] [gasGwei]")
		return
	}

	req := swap.Request{
		TokenAddress:    args[0],
		AmountNative:    c.cfg.DEFAULT_BUY_AMOUNT,
		SlippagePercent: c.cfg.DEFAULT_SLIPPAGE,
		GasPriorityGwei: c.cfg.DEFAULT_GAS_GWEI,
	}
	if len(args) > 1 {
		req.AmountNative = args[1]
	}
	if len(args) > 2 {
		req.SlippagePercent = args[2]
	}
	if len(args) > 3 {
		req.GasPriorityGwei = args[3]
	}

	hash, err := c.engine.Buy(ctx, req)
	if err != nil {
		c.reply(chatID, fmt.Sprintf("❌ Buy failed: %v", err))
		return
	}
	c.reply(chatID, fmt.Sprintf("✅ Buy sent: `%s`", hash.Hex()))
}

// /sell <token> [slippage%] [gasGwei] — sells the full token balance.
func (c *Controller) cmdSell(ctx context.Context, chatID int64, args []string) {
	if len(args) < 1 {
		c.reply(chatID, "Usage: /sell <token> [slippage%] [gasGwei]")
		return
	}

	req := swap.Request{
		TokenAddress:    args[0],
		SlippagePercent: c.cfg.DEFAULT_SLIPPAGE,
		GasPriorityGwei: c.cfg.DEFAULT_GAS_GWEI,
	}
	if len(args) > 1 {
		req.SlippagePercent = args[1]
	}
	if len(args) > 2 {
		req.GasPriorityGwei = args[2]
	}

	hash, err := c.engine.Sell(ctx, req)
	if err != nil {
		c.reply(chatID, fmt.Sprintf("❌ Sell failed: %v", err))
		return
	}
	c.reply(chatID, fmt.Sprintf("✅ Sell sent: `%s`", hash.Hex()))
}

func (c *Controller) cmdPositions(chatID int64) {
	positions := c.engine.Positions()
	if len(positions) == 0 {
		c.reply(chatID, "No open positions.")
		return
	}

	var b strings.Builder
	b.WriteString("*Open positions:*\n")
	for _, p := range positions {
		fmt.Fprintf(&b, "• `%s` — %s ETH in, tx %s\n",
			helpers.FormatAddress(p.Token), helpers.FormatEth(p.EthSpent),
			helpers.FormatTxHash(p.TxHash))
	}
	c.reply(chatID, b.String())
}

func (c *Controller) cmdHelp(chatID int64) {
	c.reply(chatID, `*Commands*
/connect — connect wallet
/disconnect — drop the session
/buy <token> [amountEth] [slippage%] [gasGwei]
/sell <token> [slippage%] [gasGwei] — sells full balance
/positions — open positions
/tail — recent log lines`)
}
