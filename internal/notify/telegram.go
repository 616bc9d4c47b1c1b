// Package notify broadcasts headline best bets over Telegram.
package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pickline/internal/odds"
)

// Broadcaster sends headline best-bet messages to one Telegram chat.
type Broadcaster struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// New creates a broadcaster from a bot token and destination chat.
func New(token string, chatID int64) (*Broadcaster, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("initializing telegram bot: %w", err)
	}
	return &Broadcaster{
		bot:    bot,
		chatID: chatID,
		logger: log.With().Str("component", "notify").Logger(),
	}, nil
}

// BroadcastHeadline formats and sends the qualifying best bets. It reports
// how many bets were included; zero means no message was sent.
func (b *Broadcaster) BroadcastHeadline(bets []odds.HeadlineBet) (int, error) {
	if len(bets) == 0 {
		b.logger.Info().Msg("no headline bets to broadcast")
		return 0, nil
	}

	msg := tgbotapi.NewMessage(b.chatID, FormatHeadline(bets))
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := b.bot.Send(msg); err != nil {
		return 0, fmt.Errorf("sending broadcast: %w", err)
	}

	b.logger.Info().Int("bets", len(bets)).Msg("headline broadcast sent")
	return len(bets), nil
}

// FormatHeadline renders the broadcast body.
func FormatHeadline(bets []odds.HeadlineBet) string {
	var sb strings.Builder
	sb.WriteString("🏈 *Best Bets*\n\n")
	for _, hb := range bets {
		sb.WriteString(fmt.Sprintf(
			"*%s @ %s* (week %d)\n%s — %s, edge %.1f%%\n\n",
			hb.Pick.AwayTeam, hb.Pick.HomeTeam, hb.Pick.Week,
			hb.Pick.Prediction, hb.Bet.Market, hb.Bet.Edge,
		))
	}
	return strings.TrimSpace(sb.String())
}
