// Package chat holds the assistant conversation shown next to the editor.
package chat

import "writeassist/internal/domain"

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type ContentType string

const (
	TypeText              ContentType = "text"
	TypeLoading           ContentType = "loading"
	TypeActionCards       ContentType = "action-cards"
	TypeGrammarResults    ContentType = "grammar-results"
	TypeParaphraseResults ContentType = "paraphrase-results"
	TypeCompressResults   ContentType = "compress-results"
	TypeReadinessResults  ContentType = "readiness-results"
	TypePlagiarismResults ContentType = "plagiarism-results"
)

// Content is the body of a message. Which fields are set depends on Type.
type Content struct {
	Type        ContentType                 `json:"type"`
	Text        string                      `json:"text,omitempty"`
	Suggestions []domain.Suggestion         `json:"suggestions,omitempty"`
	Paraphrase  *domain.ParaphraseResult    `json:"paraphrase,omitempty"`
	Compressed  string                      `json:"compressed,omitempty"`
	Target      int                         `json:"target,omitempty"`
	Scores      []domain.ReadinessDimension `json:"scores,omitempty"`
	Plagiarism  *domain.PlagiarismResult    `json:"plagiarism,omitempty"`
	Error       string                      `json:"error,omitempty"`
}

func Text(s string) Content    { return Content{Type: TypeText, Text: s} }
func Loading(s string) Content { return Content{Type: TypeLoading, Text: s} }
func ActionCards() Content     { return Content{Type: TypeActionCards} }

func GrammarResults(s []domain.Suggestion) Content {
	return Content{Type: TypeGrammarResults, Suggestions: append([]domain.Suggestion{}, s...)}
}

func ParaphraseResults(res domain.ParaphraseResult) Content {
	return Content{Type: TypeParaphraseResults, Paraphrase: &res}
}

func CompressResults(text string, target int) Content {
	return Content{Type: TypeCompressResults, Compressed: text, Target: target}
}

func ReadinessResults(scores []domain.ReadinessDimension) Content {
	return Content{Type: TypeReadinessResults, Scores: append([]domain.ReadinessDimension{}, scores...)}
}

func PlagiarismResults(res domain.PlagiarismResult) Content {
	return Content{Type: TypePlagiarismResults, Plagiarism: &res}
}

// Failed is a results message of type t that carries only an error text.
func Failed(t ContentType, errText string) Content {
	return Content{Type: t, Error: errText}
}

type Message struct {
	ID      int     `json:"id"`
	Sender  Sender  `json:"sender"`
	Content Content `json:"content"`
}

// Transcript is an append-only list of messages with increasing ids. It
// always starts with the bot's action cards as message 0.
type Transcript struct {
	messages []Message
	next     int
}

func NewTranscript() *Transcript {
	return &Transcript{
		messages: []Message{{ID: 0, Sender: SenderBot, Content: ActionCards()}},
		next:     1,
	}
}

// Append adds a message and returns it with its assigned id.
func (t *Transcript) Append(sender Sender, content Content) Message {
	m := Message{ID: t.next, Sender: sender, Content: content}
	t.next++
	t.messages = append(t.messages, m)
	return m
}

// Replace swaps the content of message id, typically a loading placeholder.
func (t *Transcript) Replace(id int, content Content) bool {
	for i := range t.messages {
		if t.messages[i].ID == id {
			t.messages[i].Content = content
			return true
		}
	}
	return false
}

func (t *Transcript) Get(id int) (Message, bool) {
	for _, m := range t.messages {
		if m.ID == id {
			return m, true
		}
	}
	return Message{}, false
}

// Messages returns a copy of the transcript in order.
func (t *Transcript) Messages() []Message {
	return append([]Message(nil), t.messages...)
}

func (t *Transcript) Len() int { return len(t.messages) }
