package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/bwmarrin/discordgo"

	"dotaresponses/internal/domain"
	"dotaresponses/internal/query"
)

// Discord rejects message content longer than this.
const maxMessageLen = 2000

const (
	startMessage = "Hi, I send Dota 2 voice responses.\nType %shelp to see how to use me."
	helpMessage  = "Usage:\n" +
		"`%[1]sresponse first blood` or `%[1]sr first blood` sends the best matching response.\n" +
		"`%[1]sall first blood` lists every response containing the text.\n" +
		"Search one hero with `hero/text`, e.g. `%[1]sr axe/first blood`. " +
		"There is no need to type the full hero name."
)

// Sender is the part of a discordgo session the handler needs.
type Sender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Finder answers queries; *service.ResponseService implements it.
type Finder interface {
	domain.ResponseFinder
	DisplayName(group string) string
}

// HandlerConfig configures a Handler.
type HandlerConfig struct {
	Prefix       string
	DefaultQuery string
	// MaxListed caps the lines of an all-responses reply.
	MaxListed    int
	AttachAudio  bool
	AudioTimeout time.Duration
}

// Handler turns chat commands into queries and replies with the result.
type Handler struct {
	finder       Finder
	fetcher      AudioFetcher
	logger       *slog.Logger
	prefix       string
	defaultQuery string
	maxListed    int
	attachAudio  bool
	audioTimeout time.Duration
}

// NewHandler builds a Handler. fetcher may be nil when audio is not attached.
func NewHandler(finder Finder, fetcher AudioFetcher, cfg HandlerConfig, logger *slog.Logger) *Handler {
	if cfg.Prefix == "" {
		cfg.Prefix = "!"
	}
	if cfg.AudioTimeout <= 0 {
		cfg.AudioTimeout = 15 * time.Second
	}
	return &Handler{
		finder:       finder,
		fetcher:      fetcher,
		logger:       logger,
		prefix:       cfg.Prefix,
		defaultQuery: cfg.DefaultQuery,
		maxListed:    cfg.MaxListed,
		attachAudio:  cfg.AttachAudio && fetcher != nil,
		audioTimeout: cfg.AudioTimeout,
	}
}

// Handle processes one chat message. Messages that are not commands are
// ignored.
func (h *Handler) Handle(ctx context.Context, s Sender, msg *discordgo.Message) error {
	command, args, ok := h.parseCommand(msg.Content)
	if !ok {
		return nil
	}
	h.logger.Info("discord command", "command", command, "channel", msg.ChannelID, "args", args)

	switch command {
	case "start":
		return h.reply(s, msg, fmt.Sprintf(startMessage, h.prefix))
	case "help":
		return h.reply(s, msg, fmt.Sprintf(helpMessage, h.prefix))
	case "response", "r":
		return h.handleBest(ctx, s, msg, args)
	case "all":
		return h.handleAll(s, msg, args)
	default:
		return nil
	}
}

func (h *Handler) parseCommand(content string) (command, args string, ok bool) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, h.prefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(content, h.prefix)
	command, args = rest, ""
	if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
		command, args = rest[:i], rest[i:]
	}
	command = strings.ToLower(command)
	if command == "" {
		return "", "", false
	}
	return command, strings.TrimSpace(args), true
}

func (h *Handler) handleBest(ctx context.Context, s Sender, msg *discordgo.Message, args string) error {
	q := query.Parse(args, "")
	if q.Text == "" {
		return h.reply(s, msg, fmt.Sprintf("Please send a text to get a response.\nSee %shelp", h.prefix))
	}
	match, ok := h.finder.Best(q)
	if !ok {
		return h.reply(s, msg, "Failed to find a response!")
	}

	content := fmt.Sprintf("**%s**: %s", h.finder.DisplayName(match.Group), match.Response.Text)
	ref := match.Response.AudioRef()
	if ref == "" {
		return h.reply(s, msg, content)
	}
	if !h.attachAudio {
		return h.reply(s, msg, content+"\n"+ref)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, h.audioTimeout)
	defer cancel()
	name, body, err := h.fetcher.Fetch(fetchCtx, ref)
	if err != nil {
		h.logger.Warn("discord: audio fetch failed, sending link", "url", ref, "err", err)
		return h.reply(s, msg, content+"\n"+ref)
	}
	defer body.Close()

	_, err = s.ChannelMessageSendComplex(msg.ChannelID, &discordgo.MessageSend{
		Content:   content,
		Reference: msg.Reference(),
		Files:     []*discordgo.File{{Name: name, ContentType: "audio/mpeg", Reader: body}},
	})
	if err != nil {
		return fmt.Errorf("discord: send voice: %w", err)
	}
	return nil
}

func (h *Handler) handleAll(s Sender, msg *discordgo.Message, args string) error {
	q := query.Parse(args, h.defaultQuery)
	if q.Text == "" {
		return h.reply(s, msg, fmt.Sprintf("Please send a text to search for.\nSee %shelp", h.prefix))
	}
	res := h.finder.All(q)
	if len(res) == 0 {
		return h.reply(s, msg, fmt.Sprintf("No responses contain %q.", q.Text))
	}
	return h.reply(s, msg, formatAll(res, h.maxListed))
}

// formatAll renders one line per response and stops before exceeding either
// maxLines or the Discord message limit.
func formatAll(res domain.GroupedResponses, maxLines int) string {
	total := res.Len()
	var b strings.Builder
	shown := 0
	for _, gm := range res {
		for _, r := range gm.Responses {
			line := fmt.Sprintf("**%s**: %s", gm.Display, r.Text)
			if ref := r.AudioRef(); ref != "" {
				line += " <" + ref + ">"
			}
			line += "\n"
			if (maxLines > 0 && shown >= maxLines) || b.Len()+len(line) > maxMessageLen-40 {
				fmt.Fprintf(&b, "... and %d more", total-shown)
				return b.String()
			}
			b.WriteString(line)
			shown++
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (h *Handler) reply(s Sender, msg *discordgo.Message, content string) error {
	_, err := s.ChannelMessageSendComplex(msg.ChannelID, &discordgo.MessageSend{
		Content:   content,
		Reference: msg.Reference(),
	})
	if err != nil {
		return fmt.Errorf("discord: send message: %w", err)
	}
	return nil
}
