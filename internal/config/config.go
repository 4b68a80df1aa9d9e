package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingServer  = errors.New("missing MUSICSTATS_SERVER (or server in settings file)")
	ErrMissingToken   = errors.New("missing MUSICSTATS_TOKEN (or token in settings file)")
	ErrMissingStation = errors.New("missing STATION (or station in settings file)")
)

type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	AllowedOrigin string `env:"ALLOWED_ORIGIN" envDefault:"*"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"text"`
	SettingsFile  string `env:"SETTINGS_FILE" envDefault:"settings.yaml"`

	// Content API (MusicStats)
	Server string `env:"MUSICSTATS_SERVER"`
	Token  string `env:"MUSICSTATS_TOKEN"`

	// Station the skill is bound to
	Station       string `env:"STATION"`
	StationName   string `env:"STATION_NAME"`
	MetadataToken string `env:"METADATA_TOKEN"`

	// Optional application ID check on incoming envelopes
	SkillID string `env:"SKILL_ID"`
}

// Settings mirrors the settings file shipped alongside the skill. Any value
// set here only fills fields the environment left empty.
type Settings struct {
	Server        string `yaml:"server"`
	Token         string `yaml:"token"`
	Station       string `yaml:"station"`
	StationName   string `yaml:"stationName"`
	MetadataToken string `yaml:"metadata_token"`
	SkillID       string `yaml:"skill_id"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	settings, err := LoadSettings(cfg.SettingsFile)
	if err != nil {
		return Config{}, err
	}
	cfg.apply(settings)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadSettings reads the YAML settings file. A missing file yields empty
// settings.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	if strings.TrimSpace(path) == "" {
		return s, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

func (c *Config) apply(s Settings) {
	c.Server = firstNonEmpty(c.Server, s.Server)
	c.Token = firstNonEmpty(c.Token, s.Token)
	c.Station = firstNonEmpty(c.Station, s.Station)
	c.StationName = firstNonEmpty(c.StationName, s.StationName, c.Station)
	c.MetadataToken = firstNonEmpty(c.MetadataToken, s.MetadataToken)
	c.SkillID = firstNonEmpty(c.SkillID, s.SkillID)
}

func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Server) == "":
		return ErrMissingServer
	case strings.TrimSpace(c.Token) == "":
		return ErrMissingToken
	case strings.TrimSpace(c.Station) == "":
		return ErrMissingStation
	}
	return nil
}

// ServerURL returns the content API base URL. A bare host is served over
// HTTPS; a value that already has a scheme is used as-is.
func (c Config) ServerURL() string {
	s := strings.TrimRight(strings.TrimSpace(c.Server), "/")
	if strings.Contains(s, "://") {
		return s
	}
	return "https://" + s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
