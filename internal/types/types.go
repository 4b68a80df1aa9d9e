package types

// Request types sent by the voice platform.
const (
	RequestLaunch                 = "LaunchRequest"
	RequestIntent                 = "IntentRequest"
	RequestSessionEnded           = "SessionEndedRequest"
	RequestExceptionEncountered   = "System.ExceptionEncountered"
	RequestPlaybackStarted        = "AudioPlayer.PlaybackStarted"
	RequestPlaybackStopped        = "AudioPlayer.PlaybackStopped"
	RequestPlaybackNearlyFinished = "AudioPlayer.PlaybackNearlyFinished"
	RequestPauseCommandIssued     = "PlaybackController.PauseCommandIssued"
)

type RequestEnvelope struct {
	Version string   `json:"version"`
	Session *Session `json:"session,omitempty"`
	Context *Context `json:"context,omitempty"`
	Request Request  `json:"request"`
}

type Session struct {
	SessionID   string      `json:"sessionId"`
	New         bool        `json:"new"`
	Application Application `json:"application"`
}

type Application struct {
	ApplicationID string `json:"applicationId"`
}

type Context struct {
	System struct {
		Application Application `json:"application"`
	} `json:"System"`
}

type Request struct {
	Type      string        `json:"type"`
	RequestID string        `json:"requestId"`
	Timestamp string        `json:"timestamp,omitempty"`
	Locale    string        `json:"locale,omitempty"`
	Intent    *Intent       `json:"intent,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	Error     *RequestError `json:"error,omitempty"`
}

type Intent struct {
	Name string `json:"name"`
}

// RequestError is the error block carried by SessionEndedRequest and
// System.ExceptionEncountered.
type RequestError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// IntentName returns the intent name of an IntentRequest, or "".
func (r Request) IntentName() string {
	if r.Type != RequestIntent || r.Intent == nil {
		return ""
	}
	return r.Intent.Name
}

// ApplicationID returns the skill the envelope was sent for, preferring the
// session block and falling back to the context block.
func (e RequestEnvelope) ApplicationID() string {
	if e.Session != nil && e.Session.Application.ApplicationID != "" {
		return e.Session.Application.ApplicationID
	}
	if e.Context != nil {
		return e.Context.System.Application.ApplicationID
	}
	return ""
}

type ResponseEnvelope struct {
	Version  string   `json:"version"`
	Response Response `json:"response"`
}

type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	Directives       []Directive   `json:"directives,omitempty"`
	ShouldEndSession *bool         `json:"shouldEndSession,omitempty"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	SSML string `json:"ssml"`
}

type Card struct {
	Type  string     `json:"type"`
	Title string     `json:"title,omitempty"`
	Text  string     `json:"text,omitempty"`
	Image *CardImage `json:"image,omitempty"`
}

type CardImage struct {
	SmallImageURL string `json:"smallImageUrl,omitempty"`
	LargeImageURL string `json:"largeImageUrl,omitempty"`
}

// Directive is one audio player instruction. Only the fields relevant to its
// Type are set.
type Directive struct {
	Type          string     `json:"type"`
	PlayBehavior  string     `json:"playBehavior,omitempty"`
	ClearBehavior string     `json:"clearBehavior,omitempty"`
	AudioItem     *AudioItem `json:"audioItem,omitempty"`
}

type AudioItem struct {
	Stream   Stream         `json:"stream"`
	Metadata *AudioMetadata `json:"metadata,omitempty"`
}

type Stream struct {
	URL                   string `json:"url"`
	Token                 string `json:"token"`
	OffsetInMilliseconds  int    `json:"offsetInMilliseconds"`
	ExpectedPreviousToken string `json:"expectedPreviousToken,omitempty"`
}

type AudioMetadata struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Art      *Art   `json:"art,omitempty"`
}

type Art struct {
	Sources []ImageSource `json:"sources"`
}

type ImageSource struct {
	ContentDescription string `json:"contentDescription,omitempty"`
	URL                string `json:"url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
