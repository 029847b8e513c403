package domain

import "regexp"

// codePattern matches a run of 4 to 9 ASCII digits bounded by word boundaries.
var codePattern = regexp.MustCompile(`\b[0-9]{4,9}\b`)

// ExtractCode returns the leftmost authentication code candidate in text.
// It is a heuristic: ZIP codes, years and order numbers match too.
func ExtractCode(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	loc := codePattern.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return text[loc[0]:loc[1]], true
}

// ExtractFromMessage runs ExtractCode over a message record.
// Self-authored and text-less messages never yield a code.
func ExtractFromMessage(msg *MessageRecord) (*ExtractedCode, bool) {
	if msg == nil || msg.FromSelf || !msg.HasText() {
		return nil, false
	}
	value, ok := ExtractCode(msg.Body())
	if !ok {
		return nil, false
	}
	return &ExtractedCode{
		Value:             value,
		SourceTimestampMs: msg.TimestampMs,
		SenderID:          msg.Sender(),
	}, true
}
