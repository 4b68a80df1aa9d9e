package skill

import (
	"strings"

	"github.com/steelegbr/solidradioalexa/internal/types"
)

const responseVersion = "1.0"

// Audio player directive types and behaviours.
const (
	DirectivePlay       = "AudioPlayer.Play"
	DirectiveClearQueue = "AudioPlayer.ClearQueue"
	DirectiveStop       = "AudioPlayer.Stop"

	PlayReplaceAll = "REPLACE_ALL"
	ClearAll       = "CLEAR_ALL"
	ClearEnqueued  = "CLEAR_ENQUEUED"
)

// responseBuilder assembles a response envelope one part at a time.
type responseBuilder struct {
	resp types.Response
}

func newResponse() *responseBuilder {
	return &responseBuilder{}
}

func (b *responseBuilder) speak(text string) *responseBuilder {
	b.resp.OutputSpeech = &types.OutputSpeech{
		Type: "SSML",
		SSML: "<speak>" + strings.TrimSpace(text) + "</speak>",
	}
	return b
}

func (b *responseBuilder) standardCard(title, text, smallImage, largeImage string) *responseBuilder {
	card := &types.Card{Type: "Standard", Title: title, Text: text}
	if smallImage != "" || largeImage != "" {
		card.Image = &types.CardImage{SmallImageURL: smallImage, LargeImageURL: largeImage}
	}
	b.resp.Card = card
	return b
}

func (b *responseBuilder) play(behavior, url, token string, offsetMs int, metadata *types.AudioMetadata) *responseBuilder {
	b.resp.Directives = append(b.resp.Directives, types.Directive{
		Type:         DirectivePlay,
		PlayBehavior: behavior,
		AudioItem: &types.AudioItem{
			Stream: types.Stream{
				URL:                  url,
				Token:                token,
				OffsetInMilliseconds: offsetMs,
			},
			Metadata: metadata,
		},
	})
	return b
}

func (b *responseBuilder) clearQueue(behavior string) *responseBuilder {
	b.resp.Directives = append(b.resp.Directives, types.Directive{
		Type:          DirectiveClearQueue,
		ClearBehavior: behavior,
	})
	return b
}

func (b *responseBuilder) stop() *responseBuilder {
	b.resp.Directives = append(b.resp.Directives, types.Directive{Type: DirectiveStop})
	return b
}

func (b *responseBuilder) envelope() types.ResponseEnvelope {
	return types.ResponseEnvelope{Version: responseVersion, Response: b.resp}
}
