package session

import "sync"

// Session owns the in-memory conversation state: the ordered transcript,
// the pending attachment list and the behavior settings. Nothing here is
// persisted. UI callbacks and the background send goroutine both touch the
// session, so all access goes through the mutex.
type Session struct {
	mu       sync.Mutex
	messages []Message
	pending  []Attachment
	settings Settings
	sending  bool
}

// New creates a session with the given startup settings.
func New(settings Settings) *Session {
	return &Session{settings: settings}
}

// Append adds a message to the end of the transcript. Order is preserved;
// individual messages are never removed.
func (s *Session) Append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Clear empties the transcript. Settings and pending attachments are
// untouched.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

// Messages returns a snapshot copy of the transcript.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// AddAttachment queues an accepted attachment for the next send.
func (s *Session) AddAttachment(att Attachment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, att)
}

// RemoveAttachment removes the pending attachment at index i. Out-of-range
// indexes are ignored.
func (s *Session) RemoveAttachment(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.pending) {
		return
	}
	s.pending = append(s.pending[:i], s.pending[i+1:]...)
}

// Attachments returns a snapshot copy of the pending attachment list.
func (s *Session) Attachments() []Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Attachment, len(s.pending))
	copy(out, s.pending)
	return out
}

// ClearAttachments empties the pending attachment list.
func (s *Session) ClearAttachments() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// Settings returns a copy of the current settings.
func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings replaces the settings wholesale. The new values apply to
// the next send; an in-flight send is unaffected because it captured its
// own copy.
func (s *Session) UpdateSettings(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// BeginSend raises the in-flight flag. It returns false if a send is
// already in flight, in which case the caller should not start another.
func (s *Session) BeginSend() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sending {
		return false
	}
	s.sending = true
	return true
}

// EndSend lowers the in-flight flag and clears the pending attachment
// list. It runs after every send attempt, success or failure.
func (s *Session) EndSend() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sending = false
	s.pending = nil
}

// Sending reports whether a send is currently in flight.
func (s *Session) Sending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sending
}
