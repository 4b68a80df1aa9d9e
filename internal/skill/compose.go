package skill

import (
	"fmt"
	"strings"

	"github.com/steelegbr/solidradioalexa/internal/musicstats"
	"github.com/steelegbr/solidradioalexa/internal/types"
)

// nowPlaying is everything fetched for one play request.
type nowPlaying struct {
	station  musicstats.Station
	songPlay musicstats.SongPlay
	epg      musicstats.EpgEntry
	liner    string
}

// MakeURLSecure swaps the first "http" for "https" unless the URL already
// contains "https" anywhere. It is a plain substring replacement.
func MakeURLSecure(u string) string {
	if !strings.Contains(u, "https") {
		return strings.Replace(u, "http", "https", 1)
	}
	return u
}

func sanitizeSpeech(text string) string {
	return strings.ReplaceAll(text, "&", "and")
}

// speechFor reads out the current show for CurrentShowIntent and the current
// song for everything else.
func speechFor(req types.Request, np nowPlaying) string {
	var text string
	if req.IntentName() == IntentCurrentShow {
		text = fmt.Sprintf("It's currently %s on %s. %s", np.epg.Title, np.station.Name, np.liner)
	} else {
		text = fmt.Sprintf("Now playing %s by %s on %s. %s",
			np.songPlay.Song.Title, np.songPlay.Song.DisplayArtist, np.station.Name, np.liner)
	}
	return sanitizeSpeech(text)
}

func cardText(np nowPlaying) string {
	return fmt.Sprintf("%s on %s. Now playing %s by %s.",
		np.epg.Title, np.station.Name, np.songPlay.Song.Title, np.songPlay.Song.DisplayArtist)
}

func streamMetadata(st musicstats.Station) *types.AudioMetadata {
	return &types.AudioMetadata{
		Title:    st.Slogan,
		Subtitle: st.Name,
		Art: &types.Art{
			Sources: []types.ImageSource{
				{ContentDescription: st.Name, URL: MakeURLSecure(st.LogoSquare)},
			},
		},
	}
}

// compose renders speech, card and stream directive for a fully fetched
// play request.
func compose(req types.Request, np nowPlaying, streamToken string) types.ResponseEnvelope {
	logo := MakeURLSecure(np.station.LogoSquare)
	return newResponse().
		speak(speechFor(req, np)).
		standardCard(np.station.Name, cardText(np), logo, logo).
		play(PlayReplaceAll, np.station.StreamURL, streamToken, 0, streamMetadata(np.station)).
		envelope()
}
