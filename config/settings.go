package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Settings represents the application configuration persisted to disk.
type Settings struct {
	Server   ServerSettings   `json:"server"`
	Metadata MetadataSettings `json:"metadata"`
	Cache    CacheSettings    `json:"cache"`
	Player   PlayerSettings   `json:"player"`
	Log      LogConfig        `json:"log"`
}

type ServerSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type MetadataSettings struct {
	TMDBAPIKey string `json:"tmdbApiKey"`
	Language   string `json:"language"`
	// MaxRetries is the number of extra attempts for transient catalog
	// failures. 0 disables retrying entirely.
	MaxRetries int `json:"maxRetries"`
}

type CacheSettings struct {
	Directory          string `json:"directory"`
	MetadataTTLSeconds int    `json:"metadataTtlSeconds"`
}

type PlayerSettings struct {
	DefaultSource         string `json:"defaultSource"`
	OverlayHideSeconds    int    `json:"overlayHideSeconds"`
	HeroRotationSeconds   int    `json:"heroRotationSeconds"`
	SessionMaxIdleMinutes int    `json:"sessionMaxIdleMinutes"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	File       string `json:"file"`
	Level      string `json:"level"`
	MaxSize    int    `json:"maxSize"`
	MaxAge     int    `json:"maxAge"`
	MaxBackups int    `json:"maxBackups"`
	Compress   bool   `json:"compress"`
}

func DefaultSettings() Settings {
	return Settings{
		Server:   ServerSettings{Host: "0.0.0.0", Port: 7777},
		Metadata: MetadataSettings{TMDBAPIKey: "", Language: "en-US", MaxRetries: 0},
		Cache:    CacheSettings{Directory: "cache", MetadataTTLSeconds: 3600},
		Player: PlayerSettings{
			DefaultSource:         "autoembed",
			OverlayHideSeconds:    3,
			HeroRotationSeconds:   8,
			SessionMaxIdleMinutes: 120,
		},
		Log: LogConfig{
			File:       "cache/logs/backend.log",
			Level:      "info",
			MaxSize:    50, // 50 MB per file
			MaxBackups: 3,  // keep 3 old files
			MaxAge:     7,  // 7 days
			Compress:   true,
		},
	}
}

// Manager loads and saves Settings at a fixed path.
type Manager struct {
	mu   sync.Mutex
	path string
}

func NewManager(configPath string) *Manager {
	return &Manager{path: configPath}
}

func (m *Manager) EnsureDir() error {
	dir := filepath.Dir(m.path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Load reads settings from disk, creating the file with defaults on first
// run. Missing fields from older config files are backfilled. The
// TMDB_API_KEY environment variable, when set, wins over the file value.
func (m *Manager) Load() (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.path == "" {
		return Settings{}, errors.New("config path not set")
	}
	if _, err := os.Stat(m.path); errors.Is(err, fs.ErrNotExist) {
		// create with defaults
		defaults := DefaultSettings()
		if err := m.save(defaults); err != nil {
			return Settings{}, err
		}
		return applyEnv(defaults), nil
	}
	f, err := os.Open(m.path)
	if err != nil {
		return Settings{}, err
	}
	defer f.Close()

	var s Settings
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return Settings{}, err
	}

	// Backfill defaults for settings introduced after the file was written.
	if strings.TrimSpace(s.Server.Host) == "" {
		s.Server.Host = "0.0.0.0"
	}
	if s.Server.Port == 0 {
		s.Server.Port = 7777
	}
	if strings.TrimSpace(s.Metadata.Language) == "" {
		s.Metadata.Language = "en-US"
	}
	if s.Metadata.MaxRetries < 0 {
		s.Metadata.MaxRetries = 0
	}
	if strings.TrimSpace(s.Cache.Directory) == "" {
		s.Cache.Directory = "cache"
	}
	if s.Cache.MetadataTTLSeconds == 0 {
		s.Cache.MetadataTTLSeconds = 3600
	}
	if strings.TrimSpace(s.Player.DefaultSource) == "" {
		s.Player.DefaultSource = "autoembed"
	}
	if s.Player.OverlayHideSeconds == 0 {
		s.Player.OverlayHideSeconds = 3
	}
	if s.Player.HeroRotationSeconds == 0 {
		s.Player.HeroRotationSeconds = 8
	}
	if s.Player.SessionMaxIdleMinutes == 0 {
		s.Player.SessionMaxIdleMinutes = 120
	}
	if strings.TrimSpace(s.Log.File) == "" {
		s.Log.File = "cache/logs/backend.log"
	}
	if s.Log.MaxSize == 0 {
		s.Log.MaxSize = 50
	}
	if s.Log.MaxBackups == 0 {
		s.Log.MaxBackups = 3
	}
	if s.Log.MaxAge == 0 {
		s.Log.MaxAge = 7
	}

	return applyEnv(s), nil
}

// Save atomically writes settings to disk via a temp file rename.
func (m *Manager) Save(s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(s)
}

func (m *Manager) save(s Settings) error {
	if m.path == "" {
		return errors.New("config path not set")
	}
	if err := m.EnsureDir(); err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, m.path)
}

func applyEnv(s Settings) Settings {
	if key := strings.TrimSpace(os.Getenv("TMDB_API_KEY")); key != "" {
		s.Metadata.TMDBAPIKey = key
	}
	return s
}
