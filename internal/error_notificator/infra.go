package error_notificator

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender — часть tgbotapi.BotAPI, которая нужна для отправки
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Infra struct {
	bot         Sender
	adminChatID int64
}

func NewInfra(bot Sender, adminChatID int64) *Infra {
	return &Infra{bot: bot, adminChatID: adminChatID}
}

// NewTelegramInfra поднимает бота по токену, без токена возвращает Noop
func NewTelegramInfra(token string, adminChatID int64) (Notificator, error) {
	if token == "" || adminChatID == 0 {
		return Noop{}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}

	return NewInfra(bot, adminChatID), nil
}

func (i *Infra) Notify(ctx context.Context, err error, details string) error {
	text := fmt.Sprintf(
		"❗ Receipt upload failed\n\nError: %v\n\nDetails: %s",
		err,
		details,
	)

	_, sendErr := i.bot.Send(tgbotapi.NewMessage(i.adminChatID, text))
	if sendErr != nil {
		log.Printf("[error_notificator] send fail to %d: %v", i.adminChatID, sendErr)
		return sendErr
	}

	return nil
}

type Noop struct{}

func (Noop) Notify(context.Context, error, string) error { return nil }
