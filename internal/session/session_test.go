package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writeassist/internal/chat"
	"writeassist/internal/compress"
	"writeassist/internal/domain"
	"writeassist/internal/provider/mock"
	"writeassist/internal/render"
)

func mockProviders() Providers {
	return Providers{
		Analyzer:    mock.NewAnalyzer(0),
		Paraphraser: mock.NewParaphraser(0),
		Compressor:  compress.NewTruncate(),
		Readiness:   mock.NewReadinessScorer(0),
		Plagiarism:  mock.NewPlagiarismChecker(0),
	}
}

func newSampleSession(t *testing.T) *Session {
	t.Helper()
	p := mockProviders()
	batch, err := p.Analyzer.Analyze(context.Background(), mock.SampleText)
	require.NoError(t, err)
	require.Len(t, batch, len(mock.SampleDrafts))
	return New(mock.SampleText, batch, p, Options{})
}

type failing struct{}

func (failing) Analyze(context.Context, string) ([]domain.Suggestion, error) {
	return nil, errors.New("down")
}
func (failing) Paraphrase(context.Context, string) (domain.ParaphraseResult, error) {
	return domain.ParaphraseResult{}, errors.New("down")
}
func (failing) Compress(context.Context, string, int) (string, error) { return "", errors.New("down") }
func (failing) Score(context.Context, string) ([]domain.ReadinessDimension, error) {
	return nil, errors.New("down")
}
func (failing) Check(context.Context, string) (domain.PlagiarismResult, error) {
	return domain.PlagiarismResult{}, errors.New("down")
}

func TestSession_DocumentAndSpans(t *testing.T) {
	s := newSampleSession(t)
	doc := s.Document()
	assert.Equal(t, mock.SampleText, doc.Text)
	assert.Equal(t, len(strings.Fields(mock.SampleText)), doc.WordCount)
	assert.Len(t, doc.Suggestions, 4)

	spans, err := s.Spans()
	require.NoError(t, err)
	assert.Equal(t, mock.SampleText, render.Text(spans))
}

func TestSession_AcceptAll(t *testing.T) {
	s := newSampleSession(t)
	for _, sg := range s.Document().Suggestions {
		require.NoError(t, s.Accept(sg.ID))
	}
	doc := s.Document()
	assert.Empty(t, doc.Suggestions)
	assert.Contains(t, doc.Text, "revolutionise")
	assert.NotContains(t, doc.Text, "productivity.nt")

	var nf *domain.NotFoundError
	assert.ErrorAs(t, s.Accept(1), &nf)
	assert.False(t, s.Dismiss(1))
}

func TestSession_DismissRemovesAnnotation(t *testing.T) {
	s := newSampleSession(t)
	doc := s.Document()
	id := doc.Suggestions[1].ID

	require.True(t, s.Dismiss(id))

	spans, err := s.Spans()
	require.NoError(t, err)
	assert.Equal(t, doc.Text, render.Text(spans))
	annotated := 0
	for _, sp := range spans {
		assert.False(t, sp.Annotated && sp.SuggestionID == id, "span %+v still annotated", sp)
		if sp.Annotated {
			annotated++
		}
	}
	assert.Equal(t, len(doc.Suggestions)-1, annotated)
}

func TestSession_ImmediateActions(t *testing.T) {
	s := newSampleSession(t)

	job, err := s.Action(ActionGrammar, 0)
	require.NoError(t, err)
	assert.Nil(t, job)
	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, chat.SenderUser, msgs[1].Sender)
	assert.Equal(t, "Check grammar and style", msgs[1].Content.Text)
	assert.Equal(t, chat.TypeGrammarResults, msgs[2].Content.Type)
	assert.Len(t, msgs[2].Content.Suggestions, 4)

	_, err = s.Action(ActionCitations, 0)
	require.NoError(t, err)
	_, err = s.Action(ActionFigure, 0)
	require.NoError(t, err)
	msgs = s.Messages()
	assert.Equal(t, citationsReply, msgs[4].Content.Text)
	assert.Equal(t, figureReply, msgs[6].Content.Text)

	_, err = s.Action("dance", 0)
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Len(t, s.Messages(), 7)
}

func TestSession_ProviderJobs(t *testing.T) {
	ctx := context.Background()
	s := newSampleSession(t)

	cases := []struct {
		action string
		want   chat.ContentType
	}{
		{ActionParaphrase, chat.TypeParaphraseResults},
		{ActionCompress, chat.TypeCompressResults},
		{ActionReadiness, chat.TypeReadinessResults},
		{ActionPlagiarism, chat.TypePlagiarismResults},
	}
	for _, tc := range cases {
		t.Run(tc.action, func(t *testing.T) {
			job, err := s.Action(tc.action, 0)
			require.NoError(t, err)
			require.NotNil(t, job)
			assert.NotEmpty(t, job.RequestID)

			loading := s.Messages()[job.MessageID]
			assert.Equal(t, chat.TypeLoading, loading.Content.Type)
			assert.Equal(t, 1, s.Pending())

			res := job.Run(ctx)
			require.NoError(t, res.Err)
			msg, ok := s.Complete(res)
			require.True(t, ok)
			assert.Equal(t, job.MessageID, msg.ID)
			assert.Equal(t, tc.want, msg.Content.Type)
			assert.Empty(t, msg.Content.Error)
			assert.Equal(t, 0, s.Pending())

			_, ok = s.Complete(res)
			assert.False(t, ok)
		})
	}
}

func TestSession_CompressTarget(t *testing.T) {
	s := newSampleSession(t)
	job, err := s.Action(ActionCompress, 0)
	require.NoError(t, err)
	msgs := s.Messages()
	assert.Equal(t, "Compressing text to ~100 words...", msgs[len(msgs)-1].Content.Text)

	job, err = s.Action(ActionCompress, 20)
	require.NoError(t, err)
	msg, ok := s.Complete(job.Run(context.Background()))
	require.True(t, ok)
	assert.Equal(t, 20, msg.Content.Target)
	assert.Less(t, len(strings.Fields(msg.Content.Compressed)), 25)
	assert.Equal(t, 1, s.Pending())
}

func TestSession_ProviderFailures(t *testing.T) {
	f := failing{}
	s := New("Some text here.", nil, Providers{
		Analyzer: f, Paraphraser: f, Compressor: f, Readiness: f, Plagiarism: f,
	}, Options{})

	want := map[string]string{
		ActionParaphrase: "Failed to paraphrase. Please try again.",
		ActionCompress:   "Failed to compress text. Please try again.",
		ActionReadiness:  "Failed to check submission readiness. Please try again.",
		ActionPlagiarism: "Failed to check for plagiarism. Please try again.",
	}
	for action, text := range want {
		job, err := s.Action(action, 0)
		require.NoError(t, err)
		res := job.Run(context.Background())
		var perr *domain.ProviderError
		require.ErrorAs(t, res.Err, &perr)
		assert.Equal(t, action, perr.Op)

		msg, ok := s.Complete(res)
		require.True(t, ok)
		assert.Equal(t, text, msg.Content.Error)
	}

	_, err := s.Analyze(context.Background())
	var perr *domain.ProviderError
	assert.ErrorAs(t, err, &perr)
}

func TestSession_Say(t *testing.T) {
	s := newSampleSession(t)
	user, bot, err := s.Say("  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", user.Content.Text)
	assert.Equal(t, demoReply, bot.Content.Text)
	assert.Equal(t, user.ID+1, bot.ID)

	_, _, err = s.Say("   ")
	assert.Error(t, err)
}

func TestSession_AnalyzeNeverRevivesRetiredIDs(t *testing.T) {
	s := newSampleSession(t)
	first := s.Document().Suggestions
	require.NoError(t, s.Accept(first[0].ID))
	require.True(t, s.Dismiss(first[1].ID))

	n, err := s.Analyze(context.Background())
	require.NoError(t, err)
	assert.Positive(t, n)
	for _, sg := range s.Document().Suggestions {
		assert.Greater(t, sg.ID, 4)
	}
	spans, err := s.Spans()
	require.NoError(t, err)
	assert.Equal(t, s.Document().Text, render.Text(spans))
}

func TestSession_ConcurrentUse(t *testing.T) {
	s := newSampleSession(t)
	ids := []int{}
	for _, sg := range s.Document().Suggestions {
		ids = append(ids, sg.ID)
	}
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Accept(id)
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Spans()
			_ = s.Document()
		}()
	}
	wg.Wait()
	assert.Empty(t, s.Document().Suggestions)
}
