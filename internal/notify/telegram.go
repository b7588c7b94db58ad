package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/workhub/workplace-backend/internal/service/models/order"
)

// TelegramChannel sends the order summary to a staff chat via a bot.
type TelegramChannel struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramChannel returns nil when no bot token is configured.
func NewTelegramChannel(token string, chatID int64) (*TelegramChannel, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramChannel{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (c *TelegramChannel) Name() string {
	return "telegram"
}

func (c *TelegramChannel) Send(_ context.Context, summary string, _ order.Order) error {
	msg := tgbotapi.NewMessage(c.chatID, summary)
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	return nil
}
