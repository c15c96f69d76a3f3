package session

// Notice is a short message acknowledging a user action.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// NoticeKind identifies the action a notice acknowledges.
type NoticeKind string

const (
	NoticeUndo        NoticeKind = "undo"
	NoticeRedo        NoticeKind = "redo"
	NoticeClear       NoticeKind = "clear"
	NoticeInvalidLink NoticeKind = "invalid_link"
)

var noticeMessages = map[NoticeKind]string{
	NoticeUndo:        "Undo used",
	NoticeRedo:        "Redo used",
	NoticeClear:       "Clear all used",
	NoticeInvalidLink: "Invalid form link!",
}

func (s *Session) notify(kind NoticeKind) {
	notice := Notice{Kind: kind, Message: noticeMessages[kind]}
	s.mu.Lock()
	s.notices = append(s.notices, notice)
	handler := s.onNotice
	s.mu.Unlock()
	if handler != nil {
		handler(notice)
	}
}

// Notices returns and clears the pending notices.
func (s *Session) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}
