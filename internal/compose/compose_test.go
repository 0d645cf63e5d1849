package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-ai/finsight/internal/chat"
	"github.com/finsight-ai/finsight/internal/extract"
)

func sampleResults() []extract.Result {
	return []extract.Result{
		{
			URL:      "http://news.example/rates",
			Status:   extract.StatusSuccess,
			Metadata: extract.Metadata{Title: "Rates Hold", Description: "Central bank pauses."},
			Content:  "The bank held rates steady.",
		},
		{
			URL:     "http://news.example/fx",
			Status:  extract.StatusSuccess,
			Content: "The euro firmed against the dollar.",
		},
	}
}

func TestFormatResult(t *testing.T) {
	got := FormatResult(sampleResults()[0])
	want := "URL: http://news.example/rates\n" +
		"Title: Rates Hold\n" +
		"Description: Central bank pauses.\n" +
		"Content: The bank held rates steady."
	assert.Equal(t, want, got)
}

func TestFormatResult_MissingMetadataLeavesFieldsEmpty(t *testing.T) {
	got := FormatResult(sampleResults()[1])
	assert.Contains(t, got, "Title: \n")
	assert.Contains(t, got, "Description: \n")
}

func TestJoinContext(t *testing.T) {
	got := JoinContext(sampleResults())
	parts := strings.Split(got, "\n\n")
	require.Len(t, parts, 2)
	assert.True(t, strings.HasPrefix(parts[0], "URL: http://news.example/rates"))
	assert.True(t, strings.HasPrefix(parts[1], "URL: http://news.example/fx"))
}

func TestAppendContext(t *testing.T) {
	transcript := []chat.Message{chat.User("earlier question")}

	got := AppendContext(transcript, sampleResults(), "what did the bank do?")

	require.Len(t, got, 4)
	assert.Equal(t, "earlier question", got[0].Content)
	assert.Equal(t, chat.RoleUser, got[1].Role, "context is appended as user messages")
	assert.Contains(t, got[1].Content, "http://news.example/rates")
	assert.Contains(t, got[2].Content, "http://news.example/fx")

	final := got[3]
	assert.Equal(t, chat.RoleUser, final.Role)
	assert.True(t, strings.HasPrefix(final.Content, ContextInstruction))
	assert.True(t, strings.HasSuffix(final.Content, "what did the bank do?"))
}

func TestAppendContext_NoResults(t *testing.T) {
	got := AppendContext(nil, nil, "unanswerable")

	require.Len(t, got, 1, "only the final query message is appended")
	assert.Contains(t, got[0].Content, "unanswerable")
}
