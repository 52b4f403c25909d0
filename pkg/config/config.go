package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Request RequestConfig `yaml:"request"`
	Voice   VoiceConfig   `yaml:"voice"`
	Catalog CatalogConfig `yaml:"catalog"`
	Map     MapConfig     `yaml:"map"`
	Cache   CacheConfig   `yaml:"cache"`
	Log     LogConfig     `yaml:"log"`
	History HistoryConfig `yaml:"history"`
	DB      DBConfig      `yaml:"db"`
	Server  ServerConfig  `yaml:"server"`
}

// RequestConfig holds HTTP request settings.
type RequestConfig struct {
	Timeout Duration `yaml:"timeout"`
}

// GoogleTTSConfig holds settings for Google Cloud Text-to-Speech.
type GoogleTTSConfig struct {
	Key         string `yaml:"key"`      // API Key
	Endpoint    string `yaml:"endpoint"` // optional override, e.g. a regional endpoint
	AudioFormat string `yaml:"audio_format"`
}

// ElevenLabsConfig holds settings for ElevenLabs TTS.
type ElevenLabsConfig struct {
	Key     string `yaml:"key"`
	BaseURL string `yaml:"base_url"`
	VoiceID string `yaml:"voice"` // default voice when no dialect mapping exists
	Model   string `yaml:"model"` // e.g. "eleven_multilingual_v2"
}

// NativeConfig holds settings for the platform speech engine.
type NativeConfig struct {
	Enabled bool   `yaml:"enabled"`
	Binary  string `yaml:"binary"` // espeak-ng compatible executable
}

// VoiceConfig holds voice sample settings.
type VoiceConfig struct {
	// Order lists the providers tried in sequence. Unknown names are ignored.
	Order           []string         `yaml:"order"`
	ProviderTimeout Duration         `yaml:"provider_timeout"`
	MaxTextLength   int              `yaml:"max_text_length"`
	DefaultLocale   string           `yaml:"default_locale"`
	GoogleTTS       GoogleTTSConfig  `yaml:"google_tts"`
	ElevenLabs      ElevenLabsConfig `yaml:"elevenlabs"`
	Native          NativeConfig     `yaml:"native"`
	AudioTTL        Duration         `yaml:"audio_ttl"` // lifetime of served audio handles
}

// CatalogConfig points to the language dataset. Empty path uses the bundled dataset.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// MapConfig holds map styling settings.
type MapConfig struct {
	RegionsFile   string  `yaml:"regions_file"`
	FillOpacity   float64 `yaml:"fill_opacity"`
	MutedOpacity  float64 `yaml:"muted_opacity"`
	NearbyRings   int     `yaml:"nearby_rings"`
	H3Resolution  int     `yaml:"h3_resolution"`
	StrokeColor   string  `yaml:"stroke_color"`
	StrokeWeight  float64 `yaml:"stroke_weight"`
	ExcludedColor string  `yaml:"excluded_color"`
	NoDataColor   string  `yaml:"no_data_color"`
}

// CacheConfig holds the synthesized audio cache settings.
type CacheConfig struct {
	Enabled bool     `yaml:"enabled"`
	TTL     Duration `yaml:"ttl"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server   LogSettings `yaml:"server"`
	Requests LogSettings `yaml:"requests"`
}

// HistoryConfig controls the append-only provider history logs.
type HistoryConfig struct {
	TTS HistorySettings `yaml:"tts"`
}

// HistorySettings holds settings for a single history log.
type HistorySettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DBConfig holds database settings.
type DBConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Request: RequestConfig{
			Timeout: Duration(30 * time.Second),
		},
		Voice: VoiceConfig{
			Order:           []string{"google-tts", "elevenlabs", "native", "sapi"},
			ProviderTimeout: Duration(15 * time.Second),
			MaxTextLength:   500,
			DefaultLocale:   "en-US",
			GoogleTTS: GoogleTTSConfig{
				AudioFormat: "MP3",
			},
			ElevenLabs: ElevenLabsConfig{
				BaseURL: "https://api.elevenlabs.io",
				VoiceID: "21m00Tcm4TlvDq8ikWAM",
				Model:   "eleven_multilingual_v2",
			},
			Native: NativeConfig{
				Enabled: true,
				Binary:  "espeak-ng",
			},
			AudioTTL: Duration(30 * time.Minute),
		},
		Map: MapConfig{
			RegionsFile:   "./data/regions.geojson",
			FillOpacity:   0.7,
			MutedOpacity:  0.15,
			NearbyRings:   3,
			H3Resolution:  3,
			StrokeColor:   "#ffffff",
			StrokeWeight:  0.5,
			ExcludedColor: "#9e9e9e",
			NoDataColor:   "#e0e0e0",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     Duration(Week),
		},
		Log: LogConfig{
			Server: LogSettings{
				Path:  "./logs/server.log",
				Level: "INFO",
			},
			Requests: LogSettings{
				Path:  "./logs/requests.log",
				Level: "INFO",
			},
		},
		History: HistoryConfig{
			TTS: HistorySettings{
				Enabled: true,
				Path:    "./logs/tts.log",
			},
		},
		DB: DBConfig{
			Path: "./data/lingomap.db",
		},
		Server: ServerConfig{
			Address: "localhost:1930",
		},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values.
// Existing files are merged over the defaults but never written back.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}

	// Env fallback for keys (not saved back to disk)
	applyEnv(cfg)

	if !isValidLocale(cfg.Voice.DefaultLocale) {
		return nil, fmt.Errorf("invalid default_locale format '%s': must be 'xx-YY' (e.g. 'en-US', 'ja-JP')", cfg.Voice.DefaultLocale)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if cfg.Voice.GoogleTTS.Key == "" {
		if key := os.Getenv("GOOGLE_TTS_API_KEY"); key != "" {
			cfg.Voice.GoogleTTS.Key = key
		}
	}
	if cfg.Voice.ElevenLabs.Key == "" {
		if key := os.Getenv("ELEVENLABS_API_KEY"); key != "" {
			cfg.Voice.ElevenLabs.Key = key
		}
	}
}

func isValidLocale(s string) bool {
	matched, _ := regexp.MatchString(`^[a-z]{2,3}-[A-Z]{2}$`, s)
	return matched
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# lingomap Configuration
# ---------------------
# Supported Units:
#   Duration: ns, us (or µs), ms, s, m, h, d (day), w (week)
# API keys may be left empty and supplied via GOOGLE_TTS_API_KEY / ELEVENLABS_API_KEY.

`)
	data = append(header, data...)

	reOrder := regexp.MustCompile(`(?m)^(\s+)order:`)
	data = reOrder.ReplaceAll(data, []byte("${1}# Options: google-tts, elevenlabs, native, sapi\n${1}order:"))

	reFormat := regexp.MustCompile(`(?m)^(\s+)audio_format:`)
	data = reFormat.ReplaceAll(data, []byte("${1}# Options: MP3, LINEAR16\n${1}audio_format:"))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
