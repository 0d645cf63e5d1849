// Package compose turns extraction results into the context messages appended
// to a conversation transcript before the final query.
package compose

import (
	"fmt"
	"strings"

	"github.com/finsight-ai/finsight/internal/chat"
	"github.com/finsight-ai/finsight/internal/extract"
)

// ContextInstruction is prepended to the final query message so the model
// treats the supplied context as authoritative over its own prior knowledge.
const ContextInstruction = "You are to use provided context as fact and not " +
	"your own knowledge as the context provided is the " +
	"most up-to-date information.\n\n"

// FormatResult renders one extraction result as a context block.
func FormatResult(r extract.Result) string {
	return fmt.Sprintf("URL: %s\nTitle: %s\nDescription: %s\nContent: %s",
		r.URL, r.Metadata.Title, r.Metadata.Description, r.Content)
}

// JoinContext concatenates formatted results into a single context string,
// separated by double newlines.
func JoinContext(results []extract.Result) string {
	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = FormatResult(r)
	}
	return strings.Join(blocks, "\n\n")
}

// AppendContext appends one user message per context block followed by the
// final query message carrying the standing context instruction. Context is
// added as user messages because several backends reject the system role.
func AppendContext(messages []chat.Message, results []extract.Result, query string) []chat.Message {
	for _, r := range results {
		messages = append(messages, chat.User(FormatResult(r)))
	}
	return append(messages, chat.User(ContextInstruction+query))
}
