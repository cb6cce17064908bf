package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadSettings.
const (
	EnvPreset   = "EVOPET_PRESET"
	EnvConfig   = "EVOPET_CONFIG"
	EnvSavePath = "EVOPET_SAVE_PATH"
	EnvLog      = "EVOPET_LOG"
)

// Settings are the process-level knobs: which preset, which override file,
// where the save lives and where logs go. Empty strings mean "use default".
type Settings struct {
	Preset     string
	ConfigPath string
	SavePath   string
	LogPath    string
}

// LoadSettings reads Settings from the environment, after loading a .env file
// from the working directory when one exists.
func LoadSettings() Settings {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %v", err)
	}
	return Settings{
		Preset:     os.Getenv(EnvPreset),
		ConfigPath: os.Getenv(EnvConfig),
		SavePath:   os.Getenv(EnvSavePath),
		LogPath:    os.Getenv(EnvLog),
	}
}

// Balance resolves the Balance these settings select.
func (s Settings) Balance() (Balance, error) {
	preset, err := ParsePreset(s.Preset)
	if err != nil {
		return Balance{}, err
	}
	return Load(s.ConfigPath, preset)
}
