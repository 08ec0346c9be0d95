package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/agent"
)

// Bot is the optional Telegram frontend. Each chat maps to one agent
// session, so the same conversation memory rules apply as over HTTP.
type Bot struct {
	api    *tgbotapi.BotAPI
	agent  *agent.Agent
	logger *zap.Logger
}

func New(token string, ag *agent.Agent, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:    api,
		agent:  ag,
		logger: logger,
	}, nil
}

// Run consumes updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("telegram bot started", zap.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func sessionID(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(message)
		return
	}

	typing := tgbotapi.NewChatAction(message.Chat.ID, tgbotapi.ChatTyping)
	if _, err := b.api.Request(typing); err != nil {
		b.logger.Debug("failed to send typing action", zap.Error(err))
	}

	resp := b.agent.ProcessMessage(ctx, sessionID(message.Chat.ID), message.Text)
	b.reply(message.Chat.ID, message.MessageID, resp.Message)
}

func (b *Bot) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.handleHelp(message)
	case "reset":
		b.handleReset(message)
	default:
		b.sendMessage(message.Chat.ID, "Unknown command. Use /help to see available commands.")
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	welcome := `Welcome to ZUS Coffee! ☕
I can help you browse our drinkware, find outlet locations, and work out quick price calculations.

Try asking:
- "Show me tumblers under RM50"
- "Outlets in Selangor"
- "What's 20% of RM100?"

Use /help to see all available commands.`

	b.sendMessage(message.Chat.ID, welcome)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	help := `Available commands:
/start - Start the bot
/help - Show this help message
/reset - Forget our conversation so far

You can ask about:
- Drinkware (tumblers, mugs, cups, flasks, bottles)
- Prices and promotions
- Outlet locations, hours and services
- Simple calculations, including SST`

	b.sendMessage(message.Chat.ID, help)
}

func (b *Bot) handleReset(message *tgbotapi.Message) {
	b.agent.ResetSession(sessionID(message.Chat.ID))
	b.sendMessage(message.Chat.ID, "Done, I've forgotten our conversation. What can I help you with?")
}

func (b *Bot) reply(chatID int64, replyToID int, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyToID
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send reply",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}
