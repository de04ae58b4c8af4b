package notification

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/wb-go/wbf/logger"
)

// TelegramNotifier mirrors stored notifications to users who linked a
// telegram chat.
type TelegramNotifier struct {
	bot     *tgbotapi.BotAPI
	baseURL string
	logger  logger.Logger
}

func NewTelegramNotifier(token, baseURL string, logger logger.Logger) (*TelegramNotifier, error) {
	if token == "" {
		logger.Warn("telegram bot token is empty, notifications disabled")
		return &TelegramNotifier{bot: nil, baseURL: baseURL, logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, baseURL: baseURL, logger: logger}, nil
}

func (n *TelegramNotifier) Push(ctx context.Context, user *domain.User, notif *domain.Notification) {
	n.send(ctx, user.TelegramChatID, n.format(notif))
}

func (n *TelegramNotifier) format(notif *domain.Notification) string {
	text := fmt.Sprintf("*%s*\n\n%s", notif.Title, notif.Message)
	if notif.RedirectURL != nil && n.baseURL != "" {
		text += "\n\n" + n.baseURL + *notif.RedirectURL
	}
	return text
}

func (n *TelegramNotifier) send(ctx context.Context, chatID *int64, text string) {
	if n.bot == nil {
		n.logger.Debug("notification skipped (bot disabled)", logger.String("text", text))
		return
	}

	if chatID == nil {
		n.logger.Debug("notification skipped (no chat_id)", logger.String("text", text))
		return
	}

	if err := ctx.Err(); err != nil {
		n.logger.Debug("notification skipped (context cancelled)",
			logger.Int64("chat_id", *chatID),
		)
		return
	}

	msg := tgbotapi.NewMessage(*chatID, text)
	msg.ParseMode = "Markdown"

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("failed to send telegram notification",
			logger.Int64("chat_id", *chatID),
			logger.String("error", err.Error()),
		)
	}
}
