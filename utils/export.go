package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"elroy/session"
)

// TranscriptExport is the on-disk shape of an exported chat transcript.
type TranscriptExport struct {
	App        string            `json:"app"`
	ExportedAt time.Time         `json:"exported_at"`
	Messages   []session.Message `json:"messages"`
}

// MarshalTranscript serializes the transcript for export.
func MarshalTranscript(messages []session.Message) ([]byte, error) {
	export := TranscriptExport{
		App:        "Elroy",
		ExportedAt: time.Now(),
		Messages:   messages,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transcript: %w", err)
	}
	return data, nil
}

// WriteTranscript exports the transcript to the given path.
func WriteTranscript(messages []session.Message, path string) error {
	data, err := MarshalTranscript(messages)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ExportFilename returns the download name for a transcript exported at t.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("elroy-chat-%d.json", t.UnixMilli())
}

// FormatFileSize formats file size in human-readable format
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
