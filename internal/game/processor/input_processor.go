package processor

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/ChessTowerDefense/internal/game/core"
)

// Target is anything that consumes inputs: a grid engine or a dual-arena match.
// This avoids importing the game package here.
type Target interface {
	Apply(ctx context.Context, input core.Input) (bool, error)
}

// StatusReporter is optionally implemented by targets that expose their status line
type StatusReporter interface {
	StatusText() string
}

// Result records what one input did
type Result struct {
	Input    core.Input
	Accepted bool
	Status   string
	Err      error
}

// InputProcessor applies batches of inputs in arrival order
type InputProcessor struct {
	logger zerolog.Logger
}

// NewInputProcessor creates a new input processor
func NewInputProcessor(logger zerolog.Logger) *InputProcessor {
	return &InputProcessor{
		logger: logger.With().Str("component", "InputProcessor").Logger(),
	}
}

// ProcessInputs applies inputs one at a time. Order is preserved because a
// placement depends on the purchase before it. A failing input does not stop
// the batch; the first error is returned alongside every result. Cancellation
// and game over stop the batch early.
func (ip *InputProcessor) ProcessInputs(ctx context.Context, target Target, inputs []core.Input) ([]Result, error) {
	results := make([]Result, 0, len(inputs))
	var encounteredError error

	for i, input := range inputs {
		select {
		case <-ctx.Done():
			ip.logger.Warn().Err(ctx.Err()).Int("processed", i).Msg("Input processing interrupted by context cancellation")
			return results, ctx.Err()
		default:
		}

		if input == nil {
			ip.logger.Warn().Int("index", i).Msg("Ignoring nil input")
			results = append(results, Result{Err: core.ErrUnknownInput})
			if encounteredError == nil {
				encounteredError = core.ErrUnknownInput
			}
			continue
		}

		ip.logger.Debug().Int("index", i).Str("kind", input.GetKind().String()).Interface("input", input).Msg("Applying input")
		accepted, err := target.Apply(ctx, input)
		res := Result{Input: input, Accepted: accepted, Err: err}
		if sr, ok := target.(StatusReporter); ok {
			res.Status = sr.StatusText()
		}
		results = append(results, res)

		if err == nil {
			continue
		}
		ip.logger.Error().Err(err).Int("index", i).Str("kind", input.GetKind().String()).Msg("Failed to apply input")
		if encounteredError == nil {
			encounteredError = err
		}
		if errors.Is(err, core.ErrGameOver) {
			break
		}
	}

	return results, encounteredError
}
