package llm

// ChatMessage represents one role-tagged turn in the outbound payload.
// Content is a plain string for system and prior turns, and an ordered
// []ContentPart for the current turn.
type ChatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// ContentPart is one typed unit inside the current turn's content.
type ContentPart struct {
	Type     string    `json:"type"` // "text", "image_url" or "file"
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
	File     *FilePart `json:"file,omitempty"`
}

// ImageURL carries an inline image as a base64 data URI.
type ImageURL struct {
	URL string `json:"url"`
}

// FilePart carries an inline document as a base64 data URI plus its
// original filename.
type FilePart struct {
	Filename string `json:"filename"`
	FileData string `json:"file_data"`
}

// chatRequest is the JSON body sent to the assistant endpoint.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// chatResponse is the subset of the endpoint's response shape we read.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
