package chat

import (
	"bytes"

	"github.com/viant/volinsight/schema"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Message is a chat log entry
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	HTML    string `json:"html,omitempty"`
	Error   bool   `json:"error,omitempty"`
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Render converts markdown to HTML; raw HTML in the source is not passed through
func Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func newAssistant(content string, isError bool) Message {
	ret := Message{Role: schema.RoleAssistant, Content: content, Error: isError}
	if rendered, err := Render(content); err == nil {
		ret.HTML = rendered
	}
	return ret
}

func history(messages []Message) []schema.ChatMessage {
	ret := make([]schema.ChatMessage, 0, len(messages))
	for _, message := range messages {
		ret = append(ret, schema.ChatMessage{Role: message.Role, Content: message.Content})
	}
	return ret
}
