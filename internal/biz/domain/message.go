package domain

// UnknownSender is used when a message has no resolvable handle
const UnknownSender = "Unknown Sender"

// MessageRecord represents one row read from the message store
// TimestampMs is the store's native date value and is only compared, never converted.
type MessageRecord struct {
	RowID       int64
	TimestampMs int64
	Text        *string // nil when the row has no text body (attachments, reactions)
	FromSelf    bool
	SenderID    string
}

// HasText checks if the message carries a non-empty text body
func (m *MessageRecord) HasText() bool {
	return m.Text != nil && *m.Text != ""
}

// Body returns the text body, or an empty string
func (m *MessageRecord) Body() string {
	if m.Text == nil {
		return ""
	}
	return *m.Text
}

// Sender returns the sender identifier, falling back to UnknownSender
func (m *MessageRecord) Sender() string {
	if m.SenderID == "" {
		return UnknownSender
	}
	return m.SenderID
}

// IsAfter checks if the message is newer than the watermark
func (m *MessageRecord) IsAfter(watermarkMs int64) bool {
	return m.TimestampMs > watermarkMs
}

// ExtractedCode is a code pulled from a message body. It is never persisted.
type ExtractedCode struct {
	Value             string
	SourceTimestampMs int64
	SenderID          string
}
