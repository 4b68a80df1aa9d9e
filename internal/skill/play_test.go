package skill

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/steelegbr/solidradioalexa/internal/liner"
	"github.com/steelegbr/solidradioalexa/internal/musicstats"
	"github.com/steelegbr/solidradioalexa/internal/types"
)

type fakeAPI struct {
	station    musicstats.Station
	stationErr error
	songPlay   musicstats.SongPlay
	songErr    error
	epg        musicstats.EpgEntry
	epgErr     error
	liners     []musicstats.Liner
	linersErr  error

	linerCalls atomic.Int32
}

func (f *fakeAPI) NowPlaying(ctx context.Context, station string) (musicstats.SongPlay, error) {
	return f.songPlay, f.songErr
}

func (f *fakeAPI) Station(ctx context.Context, station string) (musicstats.Station, error) {
	return f.station, f.stationErr
}

func (f *fakeAPI) CurrentEpgEntry(ctx context.Context, station string) (musicstats.EpgEntry, error) {
	return f.epg, f.epgErr
}

func (f *fakeAPI) Liners(ctx context.Context, station string) ([]musicstats.Liner, error) {
	f.linerCalls.Add(1)
	return f.liners, f.linersErr
}

func newFakeAPI(useLiners bool) *fakeAPI {
	return &fakeAPI{
		station: musicstats.Station{
			Name:       "Solid Radio",
			LogoSquare: "http://cdn.example.org/solidradio.png",
			Slogan:     "Great Songs All Day Long",
			StreamURL:  "https://stream.example.org/solidradio",
			LinerRatio: 1.0,
			UseLiners:  useLiners,
		},
		songPlay: musicstats.SongPlay{Song: musicstats.Song{Title: "Song Title", DisplayArtist: "Song Artist"}},
		epg:      musicstats.EpgEntry{Title: "The Show Show"},
		liners:   []musicstats.Liner{{Line: "X"}},
	}
}

func assertApology(t *testing.T, env types.ResponseEnvelope) {
	t.Helper()
	resp := env.Response
	if resp.OutputSpeech == nil || resp.OutputSpeech.SSML != "<speak>"+Apology+"</speak>" {
		t.Errorf("OutputSpeech = %+v, want apology", resp.OutputSpeech)
	}
	if resp.Card != nil {
		t.Errorf("Card = %+v, want none", resp.Card)
	}
	if len(resp.Directives) != 0 {
		t.Errorf("Directives = %+v, want none", resp.Directives)
	}
}

func TestPlayer_NowPlaying(t *testing.T) {
	api := newFakeAPI(true)
	p := NewPlayer(api, liner.NewSelector(), "Solid Radio", "meta-token")

	env := p.Play(context.Background(), intentRequest(IntentNowPlaying))

	want := "<speak>Now playing Song Title by Song Artist on Solid Radio. X</speak>"
	if env.Response.OutputSpeech == nil || env.Response.OutputSpeech.SSML != want {
		t.Fatalf("OutputSpeech = %+v, want %s", env.Response.OutputSpeech, want)
	}
	if len(env.Response.Directives) != 1 || env.Response.Directives[0].AudioItem.Stream.Token != "meta-token" {
		t.Errorf("Directives = %+v", env.Response.Directives)
	}
	if api.linerCalls.Load() != 1 {
		t.Errorf("liner fetches = %d, want 1", api.linerCalls.Load())
	}
}

func TestPlayer_CurrentShow(t *testing.T) {
	p := NewPlayer(newFakeAPI(false), liner.NewSelector(), "Solid Radio", "")

	env := p.Play(context.Background(), intentRequest(IntentCurrentShow))

	want := "<speak>It's currently The Show Show on Solid Radio.</speak>"
	if env.Response.OutputSpeech == nil || env.Response.OutputSpeech.SSML != want {
		t.Errorf("OutputSpeech = %+v, want %s", env.Response.OutputSpeech, want)
	}
}

func TestPlayer_LinersDisabledSkipsFetch(t *testing.T) {
	api := newFakeAPI(false)
	api.linersErr = errors.New("must not be called")
	p := NewPlayer(api, liner.NewSelector(), "Solid Radio", "")

	env := p.Play(context.Background(), types.Request{Type: types.RequestLaunch})

	want := "<speak>Now playing Song Title by Song Artist on Solid Radio.</speak>"
	if env.Response.OutputSpeech == nil || env.Response.OutputSpeech.SSML != want {
		t.Errorf("OutputSpeech = %+v, want %s", env.Response.OutputSpeech, want)
	}
	if n := api.linerCalls.Load(); n != 0 {
		t.Errorf("liner fetches = %d, want 0", n)
	}
}

func TestPlayer_UpstreamFailure(t *testing.T) {
	httpErr := &musicstats.HTTPError{Resource: musicstats.ResourceStation, StatusCode: http.StatusUnauthorized}
	shapeErr := &musicstats.ShapeError{Resource: musicstats.ResourceSongPlay, Err: musicstats.ErrNoResults}
	transportErr := &musicstats.TransportError{Resource: musicstats.ResourceEPG, Err: errors.New("connection refused")}
	linersErr := &musicstats.ShapeError{Resource: musicstats.ResourceLiners, Err: musicstats.ErrNoLiners}

	tests := []struct {
		name string
		fail func(f *fakeAPI)
	}{
		{"station", func(f *fakeAPI) { f.stationErr = httpErr }},
		{"songplay", func(f *fakeAPI) { f.songErr = shapeErr }},
		{"epg", func(f *fakeAPI) { f.epgErr = transportErr }},
		{"liners", func(f *fakeAPI) { f.linersErr = linersErr }},
		{"unclassified", func(f *fakeAPI) { f.epgErr = errors.New("boom") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(true)
			tt.fail(api)
			p := NewPlayer(api, liner.NewSelector(), "Solid Radio", "")
			assertApology(t, p.Play(context.Background(), intentRequest(IntentPlay)))
		})
	}
}

// upstream serves the content API for "Solid Radio" the way the live service
// answers, with stationStatus overriding the station resource.
func upstream(t *testing.T, stationStatus int) *httptest.Server {
	t.Helper()
	bodies := map[string]string{
		"/api/songplay/Solid%20Radio/":    `{"count": 1, "results": [{"song": {"title": "Song Title", "display_artist": "Song Artist"}}]}`,
		"/api/station/Solid%20Radio/":     `{"name": "Solid Radio", "logo_square": "http://cdn.example.org/solidradio.png", "slogan": "Great Songs All Day Long", "stream_aac_high": "https://stream.example.org/solidradio", "use_liners": true, "liner_ratio": 1.0}`,
		"/api/epg/Solid%20Radio/current/": `{"title": "The Show Show", "description": "All the shows"}`,
		"/api/liners/Solid%20Radio/":      `[{"line": "X"}]`,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		path := r.URL.EscapedPath()
		body, ok := bodies[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if path == "/api/station/Solid%20Radio/" && stationStatus != http.StatusOK {
			w.WriteHeader(stationStatus)
			w.Write([]byte(`{"detail": "Invalid token."}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestPlayer_AgainstContentAPI(t *testing.T) {
	t.Run("now playing with liner", func(t *testing.T) {
		server := upstream(t, http.StatusOK)
		api := musicstats.NewClient(server.URL, "test-token")
		p := NewPlayer(api, liner.NewSelector(), "Solid Radio", "meta-token")

		env := p.Play(context.Background(), types.Request{Type: types.RequestLaunch})

		want := "<speak>Now playing Song Title by Song Artist on Solid Radio. X</speak>"
		if env.Response.OutputSpeech == nil || env.Response.OutputSpeech.SSML != want {
			t.Fatalf("OutputSpeech = %+v, want %s", env.Response.OutputSpeech, want)
		}
		if env.Response.Card == nil || env.Response.Card.Image == nil ||
			env.Response.Card.Image.LargeImageURL != "https://cdn.example.org/solidradio.png" {
			t.Errorf("Card = %+v", env.Response.Card)
		}
	})

	t.Run("station unauthorised", func(t *testing.T) {
		server := upstream(t, http.StatusUnauthorized)
		api := musicstats.NewClient(server.URL, "test-token")
		p := NewPlayer(api, liner.NewSelector(), "Solid Radio", "meta-token")

		assertApology(t, p.Play(context.Background(), types.Request{Type: types.RequestLaunch}))
	})
}
