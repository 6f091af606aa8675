package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writeassist/internal/domain"
)

func TestTranscript_StartsWithActionCards(t *testing.T) {
	tr := NewTranscript()
	msgs := tr.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, 0, msgs[0].ID)
	assert.Equal(t, SenderBot, msgs[0].Sender)
	assert.Equal(t, TypeActionCards, msgs[0].Content.Type)
}

func TestTranscript_AppendAndReplace(t *testing.T) {
	tr := NewTranscript()
	u := tr.Append(SenderUser, Text("Rewrite & paraphrase the text"))
	l := tr.Append(SenderBot, Loading("Generating paraphrase variations..."))
	assert.Equal(t, 1, u.ID)
	assert.Equal(t, 2, l.ID)

	res := domain.ParaphraseResult{Formal: "F"}
	assert.True(t, tr.Replace(l.ID, ParaphraseResults(res)))
	got, ok := tr.Get(l.ID)
	require.True(t, ok)
	assert.Equal(t, TypeParaphraseResults, got.Content.Type)
	assert.Equal(t, "F", got.Content.Paraphrase.Formal)

	assert.False(t, tr.Replace(99, Text("x")))
	assert.Equal(t, 3, tr.Len())
}

func TestTranscript_MessagesIsACopy(t *testing.T) {
	tr := NewTranscript()
	msgs := tr.Messages()
	msgs[0].Content = Text("mutated")
	assert.Equal(t, TypeActionCards, tr.Messages()[0].Content.Type)
}

func TestContent_JSON(t *testing.T) {
	data, err := json.Marshal(Message{ID: 3, Sender: SenderBot, Content: Failed(TypeCompressResults, "Failed to compress text. Please try again.")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"sender":"bot","content":{"type":"compress-results","error":"Failed to compress text. Please try again."}}`, string(data))
}
