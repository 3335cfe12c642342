package engine

// RecordChat appends an exchange with the coach, keeping the newest
// ChatHistoryLimit messages.
func (e *Engine) RecordChat(msgs ...ChatMessage) *Outcome {
	e.begin()
	h := append(e.state.ChatHistory, msgs...)
	if len(h) > ChatHistoryLimit {
		h = h[len(h)-ChatHistoryLimit:]
	}
	e.state.ChatHistory = h
	return e.finish()
}

// RecentChat returns up to n of the newest chat messages, oldest first.
func (s *CharacterState) RecentChat(n int) []ChatMessage {
	if n <= 0 || n > len(s.ChatHistory) {
		n = len(s.ChatHistory)
	}
	return append([]ChatMessage(nil), s.ChatHistory[len(s.ChatHistory)-n:]...)
}
