package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dotaresponses/internal/domain"
	"dotaresponses/internal/matcher"
	"dotaresponses/internal/query"
	"dotaresponses/internal/textutil"
)

// ResponsePort is the TUI-facing subset of the response service.
type ResponsePort interface {
	Best(q domain.Query) (domain.Match, bool)
	All(q domain.Query) domain.GroupedResponses
}

type mode int

const (
	modeBest mode = iota
	modeAll
)

func (m mode) String() string {
	if m == modeAll {
		return "all"
	}
	return "best"
}

// result is one row shown in the result box.
type result struct {
	display  string
	response domain.Response
	score    int
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	service      ResponsePort
	groupSuffix  string
	defaultQuery string
	input        textinput.Model
	viewport     viewport.Model
	mode         mode
	results      []result
	summary      string
	status       string
	cursor       int
	ready        bool
	lastQuery    domain.Query
}

// New creates a new TUI model instance. summary is shown under the header.
func New(service ResponsePort, summary, groupSuffix, defaultQuery string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "hero/text or text, Enter to search, Tab to switch mode"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:      service,
		groupSuffix:  groupSuffix,
		defaultQuery: defaultQuery,
		input:        ti,
		viewport:     vp,
		summary:      summary,
		status:       "Loaded. Type to search.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2                                    // header + summary
		totalFooterLines := 1                                    // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1 // 1 spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderResults())
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			raw := m.input.Value()
			if strings.TrimSpace(raw) == "" && m.defaultQuery == "" {
				return m, nil
			}
			m = m.search(query.Parse(raw, m.defaultQuery))
			return m, nil
		case "tab":
			if m.mode == modeBest {
				m.mode = modeAll
			} else {
				m.mode = modeBest
			}
			if m.lastQuery.Text != "" {
				m = m.search(m.lastQuery)
			} else {
				m.status = "Mode: " + m.mode.String()
			}
			return m, nil
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) search(q domain.Query) Model {
	m.lastQuery = q
	m.cursor = 0
	m.results = nil
	switch m.mode {
	case modeAll:
		res := m.service.All(q)
		for _, gm := range res {
			for _, r := range gm.Responses {
				m.results = append(m.results, result{display: gm.Display, response: r})
			}
		}
		if len(m.results) == 0 {
			m.status = fmt.Sprintf("No responses contain %q", query.String(q))
		} else {
			m.status = fmt.Sprintf("%d responses for %q in %d groups", len(m.results), query.String(q), len(res))
		}
	default:
		match, ok := m.service.Best(q)
		if !ok {
			m.status = fmt.Sprintf("Failed to find a response for %q", query.String(q))
		} else {
			m.results = []result{{
				display:  matcher.DisplayName(match.Group, m.groupSuffix),
				response: match.Response,
				score:    match.Score,
			}}
			m.status = fmt.Sprintf("Best response for %q", query.String(q))
		}
	}
	m.viewport.SetContent(m.renderResults())
	return m
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Dota 2 Responses  [" + m.mode.String() + "]")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderResults() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	var b strings.Builder
	for i, r := range m.results {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		text := r.response.Text
		if m.mode == modeAll {
			text = highlightSubstring(text, m.lastQuery.Text)
		} else {
			text = highlightWords(text, matcher.Tokens(m.lastQuery.Text))
		}
		b.WriteString(marker + heroStyle.Render(r.display) + ": " + text)
		if i == m.cursor {
			line := "    " + r.response.AudioRef()
			if m.mode == modeBest {
				line += fmt.Sprintf("  score=%d", r.score)
			}
			b.WriteString("\n" + urlStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	heroStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	urlStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// highlightWords marks every whitespace-separated word of text whose trimmed,
// folded form is one of tokens.
func highlightWords(text string, tokens []string) string {
	if len(tokens) == 0 || strings.TrimSpace(text) == "" {
		return text
	}
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	words := strings.Fields(text)
	for i, w := range words {
		core := strings.TrimFunc(w, func(r rune) bool { return !textutil.IsWordRune(r) })
		if _, ok := set[textutil.Fold(core)]; ok && core != "" {
			words[i] = strings.Replace(w, core, highlightStyle.Render(core), 1)
		} else if _, ok := set[textutil.Fold(w)]; ok {
			words[i] = highlightStyle.Render(w)
		}
	}
	return strings.Join(words, " ")
}

// highlightSubstring marks the first case-insensitive occurrence of needle.
// Texts whose folded form changes length are returned unmarked.
func highlightSubstring(text, needle string) string {
	if needle == "" {
		return text
	}
	folded := textutil.Fold(text)
	if len(folded) != len(text) {
		return text
	}
	i := strings.Index(folded, textutil.Fold(needle))
	if i < 0 {
		return text
	}
	end := i + len(textutil.Fold(needle))
	if end > len(text) {
		return text
	}
	return text[:i] + highlightStyle.Render(text[i:end]) + text[end:]
}
