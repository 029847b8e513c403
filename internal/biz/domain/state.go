package domain

// EngineState is the mutable state of the watch engine.
// It is owned by the engine worker goroutine and must not be shared.
type EngineState struct {
	WatermarkMs     int64
	LastEmittedCode string // empty when nothing was emitted yet
	Running         bool
}

// NewEngineState creates a running state anchored at the given watermark
func NewEngineState(watermarkMs int64) *EngineState {
	return &EngineState{
		WatermarkMs: watermarkMs,
		Running:     true,
	}
}

// Advance moves the watermark forward. Older timestamps are ignored so the
// watermark never decreases while the engine runs.
func (s *EngineState) Advance(timestampMs int64) bool {
	if timestampMs <= s.WatermarkMs {
		return false
	}
	s.WatermarkMs = timestampMs
	return true
}

// Admit is the dedup guard. It reports whether code should be dispatched and
// records it as the last emitted code when it is. Only the most recent code is
// remembered, so A, B, A dispatches three times.
func (s *EngineState) Admit(code string) bool {
	if code == "" || code == s.LastEmittedCode {
		return false
	}
	s.LastEmittedCode = code
	return true
}

// HasEmitted reports whether any code was dispatched since the engine started
func (s *EngineState) HasEmitted() bool {
	return s.LastEmittedCode != ""
}
