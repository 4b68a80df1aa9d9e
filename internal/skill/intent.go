package skill

import (
	"slices"

	"github.com/steelegbr/solidradioalexa/internal/types"
)

// RequestKind is the closed set of requests the skill distinguishes.
type RequestKind int

const (
	KindUnknown RequestKind = iota
	KindPlay
	KindPlaybackStarted
	KindStop
	KindPlaybackStopped
	KindNearlyFinished
	KindHelp
	KindExceptionEncountered
	KindSessionEnded
)

func (k RequestKind) String() string {
	switch k {
	case KindPlay:
		return "play"
	case KindPlaybackStarted:
		return "playback_started"
	case KindStop:
		return "stop"
	case KindPlaybackStopped:
		return "playback_stopped"
	case KindNearlyFinished:
		return "nearly_finished"
	case KindHelp:
		return "help"
	case KindExceptionEncountered:
		return "exception_encountered"
	case KindSessionEnded:
		return "session_ended"
	}
	return "unknown"
}

const (
	IntentPlay        = "PlayIntent"
	IntentNowPlaying  = "NowPlayingIntent"
	IntentCurrentShow = "CurrentShowIntent"
	IntentHelp        = "AMAZON.HelpIntent"
)

// Every one of these (re)starts the stream; the live station has no queue to
// navigate.
var playIntents = []string{
	IntentPlay,
	IntentNowPlaying,
	IntentCurrentShow,
	"AMAZON.ResumeIntent",
	"AMAZON.LoopOnIntent",
	"AMAZON.NextIntent",
	"AMAZON.PreviousIntent",
	"AMAZON.RepeatIntent",
	"AMAZON.ShuffleOnIntent",
	"AMAZON.StartOverIntent",
}

var stopIntents = []string{
	"AMAZON.StopIntent",
	"AMAZON.PauseIntent",
	"AMAZON.CancelIntent",
	"AMAZON.LoopOffIntent",
	"AMAZON.ShuffleOffIntent",
}

// Classify maps a request onto its kind. Checks run in handler registration
// order and the first match wins.
func Classify(req types.Request) RequestKind {
	name := req.IntentName()
	switch {
	case req.Type == types.RequestLaunch,
		req.Type == types.RequestIntent && slices.Contains(playIntents, name):
		return KindPlay
	case req.Type == types.RequestPlaybackStarted:
		return KindPlaybackStarted
	case req.Type == types.RequestIntent && slices.Contains(stopIntents, name):
		return KindStop
	case req.Type == types.RequestPauseCommandIssued,
		req.Type == types.RequestPlaybackStopped:
		return KindPlaybackStopped
	case req.Type == types.RequestPlaybackNearlyFinished:
		return KindNearlyFinished
	case req.Type == types.RequestIntent && name == IntentHelp:
		return KindHelp
	case req.Type == types.RequestExceptionEncountered:
		return KindExceptionEncountered
	case req.Type == types.RequestSessionEnded:
		return KindSessionEnded
	}
	return KindUnknown
}
