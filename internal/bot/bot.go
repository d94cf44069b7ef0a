// Package bot exposes the response corpus through a Discord bot. It owns the
// discordgo session lifecycle and turns chat commands into queries.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Bot owns the Discord gateway connection and routes messages to a Handler.
type Bot struct {
	session   *discordgo.Session
	handler   *Handler
	logger    *slog.Logger
	closeOnce sync.Once
}

// New creates a Bot, connects to Discord and registers the message handler.
func New(token string, handler *Handler, logger *slog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	b := &Bot{session: session, handler: handler, logger: logger}
	session.AddHandler(b.onMessageCreate)

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("discord: open session: %w", err)
	}
	return b, nil
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}
	if err := b.handler.Handle(context.Background(), s, m.Message); err != nil {
		b.logger.Warn("discord: message caused error", "channel", m.ChannelID, "message", m.ID, "err", err)
	}
}

// Run blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("discord bot running", "prefix", b.handler.prefix)
	<-ctx.Done()
	return ctx.Err()
}

// Close disconnects from Discord.
func (b *Bot) Close() error {
	var closeErr error
	b.closeOnce.Do(func() {
		if err := b.session.Close(); err != nil {
			closeErr = fmt.Errorf("discord: close session: %w", err)
		}
		b.logger.Info("discord bot closed")
	})
	return closeErr
}
