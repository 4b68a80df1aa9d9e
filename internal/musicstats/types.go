package musicstats

// Station holds the branding, stream and liner policy of a station.
type Station struct {
	Name       string  `json:"name"`
	LogoSquare string  `json:"logo_square"`
	Slogan     string  `json:"slogan"`
	StreamURL  string  `json:"stream_aac_high"`
	LinerRatio float64 `json:"liner_ratio"`
	UseLiners  bool    `json:"use_liners"`
}

type Song struct {
	Title         string `json:"title"`
	DisplayArtist string `json:"display_artist"`
}

// SongPlay is one entry in a station's play history.
type SongPlay struct {
	Song Song `json:"song"`
}

// EpgEntry is the programme guide entry scheduled now.
type EpgEntry struct {
	Title string `json:"title"`
}

type Liner struct {
	Line string `json:"line"`
}

// songPlayPage is the paginated songplay response (minimal fields used)
type songPlayPage struct {
	Results []SongPlay `json:"results"`
}
