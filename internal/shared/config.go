package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Catalog  CatalogConfig  `toml:"catalog"`
	Services ServicesConfig `toml:"services"`
	Database DatabaseConfig `toml:"database"`
	Ranking  RankingConfig  `toml:"ranking"`
	Matcher  MatcherConfig  `toml:"matcher"`
}

// CatalogConfig contains the remote catalog backend settings.
type CatalogConfig struct {
	BaseURL        string `toml:"base_url"`
	Token          string `toml:"token"`
	CountryCode    string `toml:"country_code"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ServicesConfig contains endpoints for the auxiliary lookup services.
type ServicesConfig struct {
	MusicBrainzURL        string  `toml:"musicbrainz_url"`
	SonglinkURL           string  `toml:"songlink_url"`
	EmbedURL              string  `toml:"embed_url"`
	OwnHost               string  `toml:"own_host"`
	OwnPlatform           string  `toml:"own_platform"`
	TranslationConfidence float64 `toml:"translation_confidence"`
}

// DatabaseConfig contains history database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// RankingConfig exposes the scoring constants as tunables.
//
// The defaults in the embedded example config preserve the relative ordering
// history > exact-title > exact-artist > prefix > substring > popularity.
type RankingConfig struct {
	Base             float64 `toml:"base"`
	TitleExact       float64 `toml:"title_exact"`
	TitlePrefix      float64 `toml:"title_prefix"`
	TitleSubstring   float64 `toml:"title_substring"`
	ArtistExact      float64 `toml:"artist_exact"`
	ArtistPrefix     float64 `toml:"artist_prefix"`
	ArtistSubstring  float64 `toml:"artist_substring"`
	AlbumExact       float64 `toml:"album_exact"`
	AlbumPrefix      float64 `toml:"album_prefix"`
	AlbumSubstring   float64 `toml:"album_substring"`
	ContextArtist    float64 `toml:"context_artist"`
	ContextAlbum     float64 `toml:"context_album"`
	Transliteration  float64 `toml:"transliteration"`
	HistoryDirect    float64 `toml:"history_direct"`
	HistoryArtist    float64 `toml:"history_artist"`
	HistoryAlbum     float64 `toml:"history_album"`
	PopularityFactor float64 `toml:"popularity_factor"`
	PlaylistBase     float64 `toml:"playlist_base"`
}

// MatcherConfig contains playlist conversion tolerances.
type MatcherConfig struct {
	DurationToleranceSec        int `toml:"duration_tolerance_sec"`
	RelaxedDurationToleranceSec int `toml:"relaxed_duration_tolerance_sec"`
	RequestDelayMS              int `toml:"request_delay_ms"`
	SearchLimit                 int `toml:"search_limit"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values absent from the file keep their embedded defaults, so partial configs
// never zero out the ranking constants.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
