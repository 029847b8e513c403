package usecase

import (
	"context"

	"github.com/devricklin/teleport/internal/biz/domain"
	"github.com/devricklin/teleport/internal/biz/repo"
)

// PollResult describes the outcome of one poll
type PollResult struct {
	Fetched    int
	Codes      []*domain.ExtractedCode // admitted by the dedup guard, newest first
	Suppressed int                     // codes dropped as repeats
	Watermark  int64
}

// WatchUsecase turns new store rows into codes to dispatch
type WatchUsecase struct {
	messageRepo repo.MessageRepo
}

// NewWatchUsecase creates a new watch usecase
func NewWatchUsecase(messageRepo repo.MessageRepo) *WatchUsecase {
	return &WatchUsecase{messageRepo: messageRepo}
}

// Open connects to the store and anchors a fresh engine state at the newest
// existing message. The connection is closed again if anchoring fails.
func (uc *WatchUsecase) Open(ctx context.Context) (*domain.EngineState, error) {
	if err := uc.messageRepo.Connect(ctx); err != nil {
		return nil, err
	}
	watermark, err := uc.Anchor(ctx)
	if err != nil {
		_ = uc.messageRepo.Close()
		return nil, err
	}
	return domain.NewEngineState(watermark), nil
}

// Close releases the store connection
func (uc *WatchUsecase) Close() error {
	return uc.messageRepo.Close()
}

// StorePath returns the location of the watched store
func (uc *WatchUsecase) StorePath() string {
	return uc.messageRepo.Path()
}

// Anchor returns the watermark to start from so that existing messages are never replayed
func (uc *WatchUsecase) Anchor(ctx context.Context) (int64, error) {
	return uc.messageRepo.LatestTimestamp(ctx)
}

// Poll fetches rows newer than the state's watermark and processes them.
// On a query error the state is left untouched.
func (uc *WatchUsecase) Poll(ctx context.Context, state *domain.EngineState) (*PollResult, error) {
	records, err := uc.messageRepo.Since(ctx, state.WatermarkMs)
	if err != nil {
		return nil, err
	}
	return Process(state, records), nil
}

// Process runs extraction and the dedup guard over a batch ordered newest first,
// then advances the watermark to the newest timestamp seen. The watermark moves
// whether or not a code was found.
func Process(state *domain.EngineState, records []domain.MessageRecord) *PollResult {
	result := &PollResult{Fetched: len(records)}
	start := state.WatermarkMs
	newest := start

	for i := range records {
		rec := &records[i]
		if rec.FromSelf || !rec.IsAfter(start) {
			continue
		}
		if rec.TimestampMs > newest {
			newest = rec.TimestampMs
		}

		code, ok := domain.ExtractFromMessage(rec)
		if !ok {
			continue
		}
		if !state.Admit(code.Value) {
			result.Suppressed++
			continue
		}
		result.Codes = append(result.Codes, code)
	}

	state.Advance(newest)
	result.Watermark = state.WatermarkMs
	return result
}
