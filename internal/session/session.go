// Package session is the single owner of a document, its pending
// suggestions and the assistant transcript. All methods are safe for
// concurrent use; provider calls run outside the lock through Jobs.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"writeassist/internal/chat"
	"writeassist/internal/chunker"
	"writeassist/internal/domain"
	"writeassist/internal/render"
	"writeassist/internal/suggest"
)

const DefaultTargetWords = 100

const (
	demoReply      = "Thank you for your query. This is a static demo. For full functionality, please use the action cards above!"
	citationsReply = "Sure, I can help improve your citations. Please provide the DOI or abstract, and I can suggest different phrasing styles."
	figureReply    = "To generate a figure, please upload your data (e.g., CSV, Excel), and I'll suggest the best visualization for it."
)

// Action names accepted by Session.Action.
const (
	ActionGrammar    = "grammar"
	ActionParaphrase = "paraphrase"
	ActionCompress   = "compress"
	ActionReadiness  = "readiness"
	ActionPlagiarism = "plagiarism"
	ActionCitations  = "citations"
	ActionFigure     = "figure"
)

// Actions lists every action in the order the assistant offers them.
var Actions = []string{
	ActionGrammar, ActionParaphrase, ActionCompress, ActionReadiness,
	ActionPlagiarism, ActionCitations, ActionFigure,
}

// ErrUnknownAction is returned by Action for names not in Actions.
var ErrUnknownAction = errors.New("unknown action")

// Providers are the backends a session delegates to. All must be set.
type Providers struct {
	Analyzer    domain.Analyzer
	Paraphraser domain.Paraphraser
	Compressor  domain.Compressor
	Readiness   domain.ReadinessScorer
	Plagiarism  domain.PlagiarismChecker
}

type Options struct {
	// TargetWords is the compression target used when an action passes 0.
	TargetWords int
}

// Session is safe for concurrent use.
type Session struct {
	mu          sync.Mutex
	store       *suggest.Store
	transcript  *chat.Transcript
	providers   Providers
	targetWords int
	nextID      int
	pending     map[string]int
}

// New creates a session over text seeded with an initial batch of
// suggestions. Later analysis batches are renumbered after the highest id
// seen so that accepted or dismissed suggestions never come back.
func New(text string, batch []domain.Suggestion, p Providers, opts Options) *Session {
	if opts.TargetWords <= 0 {
		opts.TargetWords = DefaultTargetWords
	}
	s := &Session{
		store:       suggest.NewStore(text, batch),
		transcript:  chat.NewTranscript(),
		providers:   p,
		targetWords: opts.TargetWords,
		nextID:      1,
		pending:     make(map[string]int),
	}
	for _, sg := range batch {
		if sg.ID >= s.nextID {
			s.nextID = sg.ID + 1
		}
	}
	return s
}

// Document is a snapshot of the buffer and its live suggestions.
type Document struct {
	Text        string              `json:"text"`
	WordCount   int                 `json:"wordCount"`
	Suggestions []domain.Suggestion `json:"suggestions"`
}

func (s *Session) Document() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	text := s.store.Buffer()
	return Document{Text: text, WordCount: chunker.WordCount(text), Suggestions: s.store.List()}
}

// Spans renders the buffer with the live suggestions highlighted.
func (s *Session) Spans() ([]render.Span, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return render.Render(s.store.Buffer(), s.store.List())
}

func (s *Session) Accept(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Accept(id)
}

func (s *Session) Dismiss(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Dismiss(id)
}

// Messages returns the transcript.
func (s *Session) Messages() []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Messages()
}

// Say records free text from the user and answers with the demo reply.
func (s *Session) Say(text string) (user, bot chat.Message, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return chat.Message{}, chat.Message{}, errors.New("empty message")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user = s.transcript.Append(chat.SenderUser, chat.Text(text))
	bot = s.transcript.Append(chat.SenderBot, chat.Text(demoReply))
	return user, bot, nil
}

// Action records the user's request for action and answers it. Immediate
// actions are answered in place and return a nil Job. Provider-backed
// actions append a loading message and return the Job that produces the
// answer; pass its Result to Complete. targetWords applies to compress only,
// 0 selects the session default.
func (s *Session) Action(action string, targetWords int) (*Job, error) {
	if targetWords <= 0 {
		targetWords = s.targetWords
	}
	var prompt string
	switch action {
	case ActionGrammar:
		prompt = "Check grammar and style"
	case ActionParaphrase:
		prompt = "Rewrite & paraphrase the text"
	case ActionCompress:
		prompt = fmt.Sprintf("Compress the text to ~%d words", targetWords)
	case ActionReadiness:
		prompt = "Check submission readiness"
	case ActionPlagiarism:
		prompt = "Check for plagiarism and AI content"
	case ActionCitations:
		prompt = "Improve my citations"
	case ActionFigure:
		prompt = "Generate a figure from my data"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript.Append(chat.SenderUser, chat.Text(prompt))

	var loading string
	switch action {
	case ActionGrammar:
		s.transcript.Append(chat.SenderBot, chat.GrammarResults(s.store.List()))
		return nil, nil
	case ActionCitations:
		s.transcript.Append(chat.SenderBot, chat.Text(citationsReply))
		return nil, nil
	case ActionFigure:
		s.transcript.Append(chat.SenderBot, chat.Text(figureReply))
		return nil, nil
	case ActionParaphrase:
		loading = "Generating paraphrase variations..."
	case ActionCompress:
		loading = fmt.Sprintf("Compressing text to ~%d words...", targetWords)
	case ActionReadiness:
		loading = "Scoring submission readiness..."
	case ActionPlagiarism:
		loading = "Checking for plagiarism and AI content..."
	}

	msg := s.transcript.Append(chat.SenderBot, chat.Loading(loading))
	job := &Job{
		RequestID:   uuid.New().String(),
		MessageID:   msg.ID,
		Action:      action,
		text:        s.store.Buffer(),
		targetWords: targetWords,
		providers:   s.providers,
	}
	s.pending[job.RequestID] = msg.ID
	return job, nil
}

// Complete replaces the loading message of a finished job. Results for
// unknown or already completed requests are ignored and reported as false.
func (s *Session) Complete(res Result) (chat.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.pending[res.RequestID]
	if !ok {
		return chat.Message{}, false
	}
	delete(s.pending, res.RequestID)
	s.transcript.Replace(id, res.Content)
	msg, _ := s.transcript.Get(id)
	return msg, true
}

// Pending returns the number of jobs that have not been completed.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Analyze runs the analyzer over the current buffer and replaces the live
// suggestions with the new batch. If the buffer changed while the analyzer
// was running the batch is discarded.
func (s *Session) Analyze(ctx context.Context) (int, error) {
	s.mu.Lock()
	text := s.store.Buffer()
	s.mu.Unlock()

	batch, err := s.providers.Analyzer.Analyze(ctx, text)
	if err != nil {
		perr := &domain.ProviderError{Op: "analyze", Err: err}
		log.Printf("[error] %v", perr)
		return 0, perr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store.Buffer() != text {
		return 0, errors.New("document changed during analysis")
	}
	fresh := make([]domain.Suggestion, len(batch))
	for i, sg := range batch {
		sg.ID = s.nextID
		s.nextID++
		fresh[i] = sg
	}
	s.store.Reset(text, fresh)
	return s.store.Len(), nil
}
