package session

// AttachmentKind is the media category an attachment was accepted as.
type AttachmentKind string

const (
	KindImage AttachmentKind = "image"
	KindPDF   AttachmentKind = "pdf"
	KindText  AttachmentKind = "text"
)

// Attachment is a user-selected file queued for the next send. It lives
// only between acceptance and the next send attempt; the pending list is
// cleared unconditionally after every attempt.
type Attachment struct {
	Name      string
	MediaType string
	Size      int64
	Data      []byte
	Kind      AttachmentKind
}
