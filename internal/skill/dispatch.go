package skill

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/steelegbr/solidradioalexa/internal/types"
)

// ErrNoHandler is reported to the error handler for requests no handler
// accepts.
var ErrNoHandler = errors.New("no handler for request")

// PlayHandler renders the response for a play-class request.
type PlayHandler interface {
	Play(ctx context.Context, req types.Request) types.ResponseEnvelope
}

// Dispatcher routes every incoming request to exactly one handler.
type Dispatcher struct {
	player      PlayHandler
	stationName string
}

func NewDispatcher(player PlayHandler, stationName string) *Dispatcher {
	return &Dispatcher{player: player, stationName: stationName}
}

// Dispatch classifies the request and runs its handler. Handler errors,
// panics and unknown requests all end in handleError.
func (d *Dispatcher) Dispatch(ctx context.Context, env types.RequestEnvelope) (resp types.ResponseEnvelope) {
	kind := Classify(env.Request)
	logger := log.FromContext(ctx).With("kind", kind)
	ctx = log.WithContext(ctx, logger)

	defer func() {
		if r := recover(); r != nil {
			resp = d.handleError(ctx, env, fmt.Errorf("handler panic: %v", r))
		}
	}()

	resp, err := d.handle(ctx, kind, env.Request)
	if err != nil {
		return d.handleError(ctx, env, err)
	}
	return resp
}

func (d *Dispatcher) handle(ctx context.Context, kind RequestKind, req types.Request) (types.ResponseEnvelope, error) {
	logger := log.FromContext(ctx)

	switch kind {
	case KindPlay:
		return d.player.Play(ctx, req), nil
	case KindPlaybackStarted:
		// Drop anything enqueued behind the live stream.
		logger.Debug("audio playback start detected")
		return newResponse().clearQueue(ClearEnqueued).envelope(), nil
	case KindStop, KindPlaybackStopped:
		return stopPlayback(), nil
	case KindNearlyFinished:
		// A live stream never runs out, so nothing is enqueued.
		logger.Debug("audio nearly finished triggered")
		return newResponse().envelope(), nil
	case KindHelp:
		text := fmt.Sprintf("This skill plays %s. It can also tell you the currently playing song.", d.stationName)
		return newResponse().speak(text).envelope(), nil
	case KindExceptionEncountered:
		logger.Warn("platform reported exception", errorFields(req)...)
		return newResponse().envelope(), nil
	case KindSessionEnded:
		logger.Info("session ended", append([]any{"reason", req.Reason}, errorFields(req)...)...)
		return newResponse().envelope(), nil
	}
	return types.ResponseEnvelope{}, fmt.Errorf("%w: type=%q intent=%q", ErrNoHandler, req.Type, req.IntentName())
}

// handleError is the catch-all: it stops playback and says nothing.
func (d *Dispatcher) handleError(ctx context.Context, env types.RequestEnvelope, err error) types.ResponseEnvelope {
	log.FromContext(ctx).Error("error handled", "err", err, "type", env.Request.Type, "request_id", env.Request.RequestID)
	return stopPlayback()
}

func stopPlayback() types.ResponseEnvelope {
	return newResponse().clearQueue(ClearAll).stop().envelope()
}

func errorFields(req types.Request) []any {
	if req.Error == nil {
		return nil
	}
	return []any{"error_type", req.Error.Type, "error_message", req.Error.Message}
}
