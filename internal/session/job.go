package session

import (
	"context"
	"log"

	"writeassist/internal/chat"
	"writeassist/internal/domain"
)

// Job is a provider call started by Action. It works on a snapshot of the
// buffer and never touches the session, so it may run on any goroutine.
type Job struct {
	RequestID string
	MessageID int
	Action    string

	text        string
	targetWords int
	providers   Providers
}

// Result is the outcome of a Job, ready for Session.Complete.
type Result struct {
	RequestID string
	Content   chat.Content
	Err       error
}

var failureText = map[string]string{
	ActionParaphrase: "Failed to paraphrase. Please try again.",
	ActionCompress:   "Failed to compress text. Please try again.",
	ActionReadiness:  "Failed to check submission readiness. Please try again.",
	ActionPlagiarism: "Failed to check for plagiarism. Please try again.",
}

var resultType = map[string]chat.ContentType{
	ActionParaphrase: chat.TypeParaphraseResults,
	ActionCompress:   chat.TypeCompressResults,
	ActionReadiness:  chat.TypeReadinessResults,
	ActionPlagiarism: chat.TypePlagiarismResults,
}

// Run calls the provider. Provider failures become an error message in the
// result content rather than a returned error.
func (j *Job) Run(ctx context.Context) Result {
	content, err := j.call(ctx)
	if err != nil {
		err = &domain.ProviderError{Op: j.Action, Err: err}
		log.Printf("[error] request %s: %v", j.RequestID, err)
		content = chat.Failed(resultType[j.Action], failureText[j.Action])
	}
	return Result{RequestID: j.RequestID, Content: content, Err: err}
}

func (j *Job) call(ctx context.Context) (chat.Content, error) {
	p := j.providers
	switch j.Action {
	case ActionParaphrase:
		res, err := p.Paraphraser.Paraphrase(ctx, j.text)
		if err != nil {
			return chat.Content{}, err
		}
		return chat.ParaphraseResults(res), nil
	case ActionCompress:
		out, err := p.Compressor.Compress(ctx, j.text, j.targetWords)
		if err != nil {
			return chat.Content{}, err
		}
		return chat.CompressResults(out, j.targetWords), nil
	case ActionReadiness:
		dims, err := p.Readiness.Score(ctx, j.text)
		if err != nil {
			return chat.Content{}, err
		}
		return chat.ReadinessResults(dims), nil
	default:
		res, err := p.Plagiarism.Check(ctx, j.text)
		if err != nil {
			return chat.Content{}, err
		}
		return chat.PlagiarismResults(res), nil
	}
}
