package musicstats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
)

// ContentAPI is the read-only surface of the MusicStats content service the
// skill depends on.
type ContentAPI interface {
	NowPlaying(ctx context.Context, station string) (SongPlay, error)
	Station(ctx context.Context, station string) (Station, error)
	CurrentEpgEntry(ctx context.Context, station string) (EpgEntry, error)
	Liners(ctx context.Context, station string) ([]Liner, error)
}

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// tokenType is sent verbatim as the Authorization scheme.
const tokenType = "Token"

// Client implements ContentAPI over HTTPS. It holds no per-request state and
// is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseAPI    string
}

// NewClient returns a client for baseURL whose requests carry
// "Authorization: Token {token}".
func NewClient(baseURL, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: tokenType})
	return &Client{
		httpClient: &http.Client{
			Transport: &oauth2.Transport{Source: src, Base: http.DefaultTransport},
		},
		baseAPI: strings.TrimRight(baseURL, "/"),
	}
}

// ---- Helpers ----

func resourcePath(res Resource, station string) string {
	key := url.PathEscape(station)
	switch res {
	case ResourceSongPlay:
		return "/api/songplay/" + key + "/?page_size=1"
	case ResourceStation:
		return "/api/station/" + key + "/"
	case ResourceEPG:
		return "/api/epg/" + key + "/current/"
	case ResourceLiners:
		return "/api/liners/" + key + "/"
	}
	return ""
}

func (c *Client) get(ctx context.Context, res Resource, station string) ([]byte, error) {
	path := resourcePath(res, station)
	log.FromContext(ctx).Debug("requesting content", "resource", res, "path", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseAPI+path, nil)
	if err != nil {
		return nil, &TransportError{Resource: res, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Resource: res, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{Resource: res, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err != nil {
		return nil, &TransportError{Resource: res, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

func decodeObject(res Resource, body []byte, out any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return &ShapeError{Resource: res, Body: string(body), Err: ErrNotObject}
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return &ShapeError{Resource: res, Body: string(body), Err: err}
	}
	return nil
}

// ---- Implementations ----

// NowPlaying returns the most recent entry of the station's play history.
func (c *Client) NowPlaying(ctx context.Context, station string) (SongPlay, error) {
	body, err := c.get(ctx, ResourceSongPlay, station)
	if err != nil {
		return SongPlay{}, err
	}
	var page songPlayPage
	if err := decodeObject(ResourceSongPlay, body, &page); err != nil {
		return SongPlay{}, err
	}
	if len(page.Results) == 0 {
		return SongPlay{}, &ShapeError{Resource: ResourceSongPlay, Body: string(body), Err: ErrNoResults}
	}
	return page.Results[0], nil
}

func (c *Client) Station(ctx context.Context, station string) (Station, error) {
	body, err := c.get(ctx, ResourceStation, station)
	if err != nil {
		return Station{}, err
	}
	var st Station
	if err := decodeObject(ResourceStation, body, &st); err != nil {
		return Station{}, err
	}
	return st, nil
}

func (c *Client) CurrentEpgEntry(ctx context.Context, station string) (EpgEntry, error) {
	body, err := c.get(ctx, ResourceEPG, station)
	if err != nil {
		return EpgEntry{}, err
	}
	var entry EpgEntry
	if err := decodeObject(ResourceEPG, body, &entry); err != nil {
		return EpgEntry{}, err
	}
	return entry, nil
}

// Liners returns every marketing liner configured for the station. An empty
// list is an error: callers only ask when the station says liners are in use.
func (c *Client) Liners(ctx context.Context, station string) ([]Liner, error) {
	body, err := c.get(ctx, ResourceLiners, station)
	if err != nil {
		return nil, err
	}
	var liners []Liner
	if err := json.Unmarshal(bytes.TrimSpace(body), &liners); err != nil {
		return nil, &ShapeError{Resource: ResourceLiners, Body: string(body), Err: err}
	}
	if len(liners) == 0 {
		return nil, &ShapeError{Resource: ResourceLiners, Body: string(body), Err: ErrNoLiners}
	}
	return liners, nil
}
