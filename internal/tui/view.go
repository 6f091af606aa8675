package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"writeassist/internal/chat"
	"writeassist/internal/domain"
	"writeassist/internal/render"
	"writeassist/internal/session"
)

var (
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	headerStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	loadingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)

	kindStyles = map[domain.Kind]lipgloss.Style{
		domain.KindSpelling: lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Underline(true),
		domain.KindGrammar:  lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6")).Underline(true),
		domain.KindStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#a855f7")).Underline(true),
		domain.KindClarity:  lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")).Underline(true),
	}

	bandStyles = map[string]lipgloss.Style{
		domain.BandGood: lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")),
		domain.BandFair: lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308")),
		domain.BandPoor: lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
	}
)

var actionCards = []struct{ command, title string }{
	{"/grammar", "Check Grammar & Style"},
	{"/paraphrase", "Rewrite & Paraphrase"},
	{"/compress [words]", "Compress Text"},
	{"/readiness", "Check Submission Readiness"},
	{"/plagiarism", "Check Plagiarism & AI"},
	{"/citations", "Improve Citations"},
	{"/figure", "Generate Figure from Data"},
}

func kindStyle(k domain.Kind) lipgloss.Style {
	if s, ok := kindStyles[k]; ok {
		return s
	}
	return lipgloss.NewStyle().Underline(true)
}

// renderEditor draws the document with annotated spans coloured by kind and
// the selected suggestion reversed.
func renderEditor(spans []render.Span, selectedID, width int) string {
	var b strings.Builder
	for _, sp := range spans {
		if !sp.Annotated {
			b.WriteString(sp.Text)
			continue
		}
		st := kindStyle(sp.Kind)
		if sp.SuggestionID == selectedID {
			st = st.Reverse(true)
		}
		b.WriteString(st.Render(sp.Text))
	}
	if width <= 0 {
		return b.String()
	}
	return wordwrap.String(b.String(), width)
}

func renderTranscript(msgs []chat.Message, width int) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, renderMessage(m, width))
	}
	out := strings.Join(parts, "\n\n")
	if width <= 0 {
		return out
	}
	return wordwrap.String(out, width)
}

func renderMessage(m chat.Message, width int) string {
	who := botStyle.Render("Assistant")
	if m.Sender == chat.SenderUser {
		who = userStyle.Render("You")
	}
	c := m.Content
	var body string
	switch c.Type {
	case chat.TypeText:
		body = c.Text
	case chat.TypeLoading:
		body = loadingStyle.Render("… " + c.Text)
	case chat.TypeActionCards:
		lines := []string{"Hi! How can I help with your manuscript?"}
		for _, a := range actionCards {
			lines = append(lines, fmt.Sprintf("  %-18s %s", a.command, a.title))
		}
		body = strings.Join(lines, "\n")
	case chat.TypeGrammarResults:
		body = renderSuggestionCards(c.Suggestions, width)
	case chat.TypeParaphraseResults:
		if c.Error != "" {
			body = errorStyle.Render(c.Error)
		} else {
			p := c.Paraphrase
			body = "Here are a few paraphrasing options:\n\n" +
				headerStyle.Render("Formal") + "\n" + p.Formal + "\n\n" +
				headerStyle.Render("Concise") + "\n" + p.Concise + "\n\n" +
				headerStyle.Render("Detailed") + "\n" + p.Detailed
		}
	case chat.TypeCompressResults:
		if c.Error != "" {
			body = errorStyle.Render(c.Error)
		} else {
			body = "Here is the compressed version:\n\n" + c.Compressed
		}
	case chat.TypeReadinessResults:
		if c.Error != "" {
			body = errorStyle.Render(c.Error)
		} else {
			body = renderReadiness(c.Scores)
		}
	case chat.TypePlagiarismResults:
		if c.Error != "" {
			body = errorStyle.Render(c.Error)
		} else {
			body = renderPlagiarism(*c.Plagiarism)
		}
	default:
		body = c.Text
	}
	return who + "\n" + body
}

func renderSuggestionCards(list []domain.Suggestion, width int) string {
	if len(list) == 0 {
		return "No issues found. Nice work!"
	}
	lines := []string{fmt.Sprintf("I found %d suggestions:", len(list))}
	for _, sg := range list {
		head := fmt.Sprintf("[%s] %s → %s", sg.Kind, sg.Original, sg.Replacement)
		if width > 0 {
			head = runewidth.Truncate(head, width, "…")
		}
		lines = append(lines, kindStyle(sg.Kind).UnsetUnderline().Render(head))
		if sg.Explanation != "" {
			lines = append(lines, mutedStyle.Render("  "+sg.Explanation))
		}
	}
	return strings.Join(lines, "\n")
}

func renderReadiness(dims []domain.ReadinessDimension) string {
	overall := domain.OverallReadiness(dims)
	band := domain.ScoreBand(overall)
	lines := []string{"Submission readiness: " + bandStyles[band].Render(strconv.Itoa(overall)+"/100")}
	for _, d := range dims {
		b := domain.ScoreBand(d.Score)
		lines = append(lines, fmt.Sprintf("  %-14s %s  %s", d.Name, bandStyles[b].Render(fmt.Sprintf("%3d", d.Score)), d.Details))
	}
	return strings.Join(lines, "\n")
}

func renderPlagiarism(r domain.PlagiarismResult) string {
	lines := []string{
		fmt.Sprintf("Similarity: %d%%", r.SimilarityScore),
		fmt.Sprintf("AI content: %d%%", r.AIContentScore),
	}
	if len(r.Sources) > 0 {
		lines = append(lines, "Sources:")
		for _, s := range r.Sources {
			lines = append(lines, fmt.Sprintf("  %3d%%  %s", s.Percentage, s.URL))
		}
	}
	return strings.Join(lines, "\n")
}

// resultText is the copyable text of a finished job, if any.
func resultText(c chat.Content) string {
	switch {
	case c.Error != "":
		return ""
	case c.Type == chat.TypeCompressResults:
		return c.Compressed
	case c.Type == chat.TypeParaphraseResults && c.Paraphrase != nil:
		return c.Paraphrase.Formal
	}
	return ""
}

// parseCommand maps a slash command line to a session action and, for
// /compress, an optional word target.
func parseCommand(line string) (action string, target int, err error) {
	fields := strings.Fields(strings.TrimPrefix(line, "/"))
	if len(fields) == 0 {
		return "", 0, fmt.Errorf("empty command")
	}
	action = strings.ToLower(fields[0])
	known := false
	for _, a := range session.Actions {
		if a == action {
			known = true
			break
		}
	}
	if !known {
		return "", 0, fmt.Errorf("unknown command /%s", action)
	}
	if len(fields) > 1 {
		if action != session.ActionCompress {
			return "", 0, fmt.Errorf("/%s takes no arguments", action)
		}
		target, err = strconv.Atoi(fields[1])
		if err != nil || target <= 0 {
			return "", 0, fmt.Errorf("word target must be a positive number")
		}
	}
	return action, target, nil
}
