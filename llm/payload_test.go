package llm

import (
	"fmt"
	"strings"
	"testing"

	"elroy/session"
)

func TestBuildMessagesTextOnly(t *testing.T) {
	settings := session.DefaultSettings()

	msgs := BuildMessages(settings, nil, "What is in this report?", nil)

	if len(msgs) != 2 {
		t.Fatalf("expected system + current turn, got %d messages", len(msgs))
	}
	if msgs[0].Role != session.RoleSystem {
		t.Errorf("first message should be system, got %q", msgs[0].Role)
	}
	if msgs[1].Role != session.RoleUser {
		t.Errorf("last message should be user, got %q", msgs[1].Role)
	}

	parts, ok := msgs[1].Content.([]ContentPart)
	if !ok {
		t.Fatalf("current turn content should be []ContentPart, got %T", msgs[1].Content)
	}
	if len(parts) != 1 {
		t.Fatalf("expected exactly one text part, got %d", len(parts))
	}
	if parts[0].Type != "text" {
		t.Errorf("expected text part, got %q", parts[0].Type)
	}
	if !strings.Contains(parts[0].Text, "What is in this report?") {
		t.Errorf("part should contain the user text, got %q", parts[0].Text)
	}
	if !strings.Contains(parts[0].Text, "[directives:") {
		t.Errorf("part should carry the directive annotation, got %q", parts[0].Text)
	}
}

func TestBuildMessagesSystemTurnReflectsSettings(t *testing.T) {
	settings := session.DefaultSettings()
	settings.Tone = session.ToneFormal
	settings.CitationMode = session.CitationAlways
	settings.SystemPrompt = "Focus on financial statements."

	msgs := BuildMessages(settings, nil, "hello", nil)

	system, ok := msgs[0].Content.(string)
	if !ok {
		t.Fatalf("system content should be a string, got %T", msgs[0].Content)
	}
	if !strings.Contains(system, "formal") {
		t.Errorf("system turn should mention the formal tone, got %q", system)
	}
	if !strings.Contains(system, "Always cite") {
		t.Errorf("system turn should carry the citation directive, got %q", system)
	}
	if !strings.Contains(system, "Focus on financial statements.") {
		t.Errorf("system turn should include the configured prompt, got %q", system)
	}
}

func TestBuildMessagesCapsHistory(t *testing.T) {
	var history []session.Message
	for i := 0; i < 30; i++ {
		role := session.RoleUser
		if i%2 == 1 {
			role = session.RoleAssistant
		}
		history = append(history, session.NewMessage(role, fmt.Sprintf("turn %d", i)))
	}

	msgs := BuildMessages(session.DefaultSettings(), history, "latest", nil)

	// 1 system + 12 prior turns + 1 current turn
	if len(msgs) != 1+HistoryLimit+1 {
		t.Fatalf("expected %d messages, got %d", 1+HistoryLimit+1, len(msgs))
	}
	if msgs[1].Content != "turn 18" {
		t.Errorf("history window should start at the 18th turn, got %v", msgs[1].Content)
	}
	if msgs[HistoryLimit].Content != "turn 29" {
		t.Errorf("history window should end at the last prior turn, got %v", msgs[HistoryLimit].Content)
	}
}

func TestBuildMessagesShortHistoryIncludedVerbatim(t *testing.T) {
	history := []session.Message{
		session.NewMessage(session.RoleUser, "hi"),
		session.NewMessage(session.RoleAssistant, "hello"),
	}

	msgs := BuildMessages(session.DefaultSettings(), history, "follow-up", nil)

	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	if msgs[1].Content != "hi" || msgs[2].Content != "hello" {
		t.Errorf("prior turns should be carried verbatim, got %v, %v", msgs[1].Content, msgs[2].Content)
	}
}

func TestBuildMessagesImageAttachment(t *testing.T) {
	att := session.Attachment{
		Name:      "chart.png",
		MediaType: "image/png",
		Data:      []byte{0x89, 0x50, 0x4e, 0x47},
		Kind:      session.KindImage,
	}

	msgs := BuildMessages(session.DefaultSettings(), nil, "describe this", []session.Attachment{att})

	parts := msgs[len(msgs)-1].Content.([]ContentPart)
	if len(parts) != 3 {
		t.Fatalf("expected text + image + caption parts, got %d", len(parts))
	}
	if parts[1].Type != "image_url" || parts[1].ImageURL == nil {
		t.Fatalf("second part should be an image_url, got %+v", parts[1])
	}
	if !strings.HasPrefix(parts[1].ImageURL.URL, "data:image/png;base64,") {
		t.Errorf("image should be a base64 data URI, got %q", parts[1].ImageURL.URL)
	}
	if parts[2].Type != "text" || !strings.Contains(parts[2].Text, "chart.png") {
		t.Errorf("caption part should reference the filename, got %+v", parts[2])
	}
}

func TestBuildMessagesPDFAttachment(t *testing.T) {
	att := session.Attachment{
		Name:      "report.pdf",
		MediaType: "application/pdf",
		Data:      []byte("%PDF-1.4"),
		Kind:      session.KindPDF,
	}

	msgs := BuildMessages(session.DefaultSettings(), nil, "summarize", []session.Attachment{att})

	parts := msgs[len(msgs)-1].Content.([]ContentPart)
	if len(parts) != 3 {
		t.Fatalf("expected text + file + instruction parts, got %d", len(parts))
	}
	if parts[1].Type != "file" || parts[1].File == nil {
		t.Fatalf("second part should be a file, got %+v", parts[1])
	}
	if parts[1].File.Filename != "report.pdf" {
		t.Errorf("file part should carry the filename, got %q", parts[1].File.Filename)
	}
	if !strings.HasPrefix(parts[1].File.FileData, "data:application/pdf;base64,") {
		t.Errorf("file data should be a base64 data URI, got %q", parts[1].File.FileData)
	}
	if parts[2].Type != "text" || !strings.Contains(parts[2].Text, "report.pdf") {
		t.Errorf("instruction part should reference the filename, got %+v", parts[2])
	}
}

func TestBuildMessagesTextAttachmentMarkers(t *testing.T) {
	att := session.Attachment{
		Name:      "notes.txt",
		MediaType: "text/plain",
		Data:      []byte("line one\nline two"),
		Kind:      session.KindText,
	}

	msgs := BuildMessages(session.DefaultSettings(), nil, "read this", []session.Attachment{att})

	parts := msgs[len(msgs)-1].Content.([]ContentPart)
	if len(parts) != 2 {
		t.Fatalf("expected text + file-content parts, got %d", len(parts))
	}
	block := parts[1].Text
	if !strings.HasPrefix(block, "--- begin file: notes.txt ---\n") {
		t.Errorf("missing begin marker, got %q", block)
	}
	if !strings.HasSuffix(block, "\n--- end file: notes.txt ---") {
		t.Errorf("missing end marker, got %q", block)
	}
	if !strings.Contains(block, "line one\nline two") {
		t.Errorf("short file should be included verbatim, got %q", block)
	}
}

func TestTextAttachmentTruncatedAtLimit(t *testing.T) {
	long := strings.Repeat("a", TextFileCharLimit+500)
	att := session.Attachment{
		Name:      "big.txt",
		MediaType: "text/plain",
		Data:      []byte(long),
		Kind:      session.KindText,
	}

	msgs := BuildMessages(session.DefaultSettings(), nil, "", []session.Attachment{att})

	parts := msgs[len(msgs)-1].Content.([]ContentPart)
	block := parts[1].Text
	body := strings.TrimPrefix(block, "--- begin file: big.txt ---\n")
	body = strings.TrimSuffix(body, "\n--- end file: big.txt ---")
	if len(body) != TextFileCharLimit {
		t.Errorf("expected exactly %d characters, got %d", TextFileCharLimit, len(body))
	}
}

func TestBuildMessagesEmptyInputWithAttachment(t *testing.T) {
	att := session.Attachment{
		Name:      "a.txt",
		MediaType: "text/plain",
		Data:      []byte("content"),
		Kind:      session.KindText,
	}

	msgs := BuildMessages(session.DefaultSettings(), nil, "", []session.Attachment{att})

	parts := msgs[len(msgs)-1].Content.([]ContentPart)
	if !strings.Contains(parts[0].Text, "Please review the attached files.") {
		t.Errorf("empty input should get the default instruction, got %q", parts[0].Text)
	}
}
