package llm

import (
	"encoding/base64"
	"fmt"
	"strings"

	"elroy/session"
)

const (
	// HistoryLimit caps how many prior turns are included in a request.
	HistoryLimit = 12

	// TextFileCharLimit is the maximum number of characters of a text
	// attachment included in the payload.
	TextFileCharLimit = 200000
)

// BuildMessages assembles the outbound message sequence: exactly one
// system turn derived from the settings, at most the last HistoryLimit
// prior turns, and exactly one user turn for the current input plus
// attachments, in that order.
func BuildMessages(settings session.Settings, history []session.Message, input string, attachments []session.Attachment) []ChatMessage {
	msgs := make([]ChatMessage, 0, len(history)+2)
	msgs = append(msgs, ChatMessage{Role: session.RoleSystem, Content: systemText(settings)})

	start := len(history) - HistoryLimit
	if start < 0 {
		start = 0
	}
	for _, m := range history[start:] {
		msgs = append(msgs, ChatMessage{Role: m.Role, Content: m.Text})
	}

	parts := []ContentPart{{Type: "text", Text: annotateInput(settings, input, len(attachments))}}
	for _, att := range attachments {
		switch att.Kind {
		case session.KindImage:
			parts = append(parts,
				ContentPart{Type: "image_url", ImageURL: &ImageURL{URL: dataURI(att)}},
				ContentPart{Type: "text", Text: fmt.Sprintf("The image above is the attached file %q.", att.Name)},
			)
		case session.KindPDF:
			parts = append(parts,
				ContentPart{Type: "file", File: &FilePart{Filename: att.Name, FileData: dataURI(att)}},
				ContentPart{Type: "text", Text: fmt.Sprintf("Read the attached document %q in full before answering.", att.Name)},
			)
		case session.KindText:
			parts = append(parts, ContentPart{Type: "text", Text: textFileBlock(att)})
		}
	}
	msgs = append(msgs, ChatMessage{Role: session.RoleUser, Content: parts})

	return msgs
}

// systemText renders the settings into the leading system turn.
func systemText(st session.Settings) string {
	var sb strings.Builder
	sb.WriteString("You are Elroy, a chat assistant for analyzing user-provided documents.")

	switch st.Tone {
	case session.ToneFriendly:
		sb.WriteString(" Respond in a warm, friendly tone.")
	case session.ToneFormal:
		sb.WriteString(" Respond in a formal, professional tone.")
	default:
		sb.WriteString(" Respond in a neutral tone.")
	}

	switch st.Depth {
	case session.DepthConcise:
		sb.WriteString(" Keep answers short and to the point.")
	case session.DepthDetailed:
		sb.WriteString(" Answer thoroughly, covering relevant details.")
	default:
		sb.WriteString(" Balance brevity and completeness.")
	}

	switch st.CitationMode {
	case session.CitationAlways:
		sb.WriteString(" Always cite the source passage for claims drawn from attached documents.")
	case session.CitationNever:
		sb.WriteString(" Do not include citations.")
	default:
		sb.WriteString(" Cite source passages when it helps the user verify a claim.")
	}

	if st.ExtractTables {
		sb.WriteString(" Reproduce tables found in attached documents as Markdown tables.")
	}
	if st.DescribeImages {
		sb.WriteString(" Briefly describe attached images before answering questions about them.")
	}

	if prompt := strings.TrimSpace(st.SystemPrompt); prompt != "" {
		sb.WriteString("\n\n")
		sb.WriteString(prompt)
	}

	return sb.String()
}

// annotateInput produces the current turn's leading text block: the user's
// text followed by a compact directive suffix. With empty input a default
// instruction stands in for it.
func annotateInput(st session.Settings, input string, attachmentCount int) string {
	text := strings.TrimSpace(input)
	if text == "" && attachmentCount > 0 {
		text = "Please review the attached files."
	}
	return fmt.Sprintf("%s\n\n[directives: tone=%s; depth=%s; citations=%s]", text, st.Tone, st.Depth, st.CitationMode)
}

// textFileBlock renders a text attachment, truncated at TextFileCharLimit
// characters, between markers that name the file.
func textFileBlock(att session.Attachment) string {
	content := string(att.Data)
	if runes := []rune(content); len(runes) > TextFileCharLimit {
		content = string(runes[:TextFileCharLimit])
	}
	return fmt.Sprintf("--- begin file: %s ---\n%s\n--- end file: %s ---", att.Name, content, att.Name)
}

// dataURI encodes an attachment as a base64 data URI.
func dataURI(att session.Attachment) string {
	return fmt.Sprintf("data:%s;base64,%s", att.MediaType, base64.StdEncoding.EncodeToString(att.Data))
}
