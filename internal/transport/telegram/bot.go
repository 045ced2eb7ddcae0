package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/casabot/internal/config"
	"github.com/sandevgo/casabot/internal/core"
	"github.com/sandevgo/casabot/internal/service/agent"
	"github.com/sandevgo/casabot/pkg/conv"
	"github.com/sandevgo/casabot/pkg/log"
)

const baseContextKey = "base_context"

type Bot struct {
	bot     *tele.Bot
	cfg     *config.TelegramConfig
	agent   *agent.Agent
	router  core.CmdRouter
	sender  *sender
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	agent *agent.Agent,
	router core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		cfg:     cfg,
		agent:   agent,
		router:  router,
		sender:  newSender(b),
		ownerID: cfg.OwnerID,
	}

	// Hand the signal-aware context with logger to every handler
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Only the owner talks to this bot
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	sessionID := fmt.Sprintf("telegram-%d", c.Chat().ID)

	if out, handled := b.router.Execute(ctx, sessionID, c.Text()); handled {
		return b.sender.sendMarkdown(ctx, c.Chat(), out, false)
	}

	_ = c.Notify(tele.Typing)

	_, err := b.agent.Run(ctx, sessionID, c.Text(), func(msg core.Message) {
		if msg.Content != "" {
			htmlContent := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(msg.Content)))
			if htmlContent != "" {
				if err := c.Send(htmlContent, tele.ModeHTML); err != nil {
					logger.Error().Err(err).Msg("failed to send telegram message")
				}
				_ = c.Notify(tele.Typing)
			}
		}

		for _, tc := range msg.ToolCalls {
			_ = c.Send(fmt.Sprintf("🛠 Executing: %s", tc.Function.Name))
			_ = c.Notify(tele.Typing)
		}
	})

	if err != nil {
		logger.Error().Err(err).Msg("agent run failed")
		return c.Send(fmt.Sprintf("error: %v", err))
	}

	return nil
}
