package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port             string           `mapstructure:"port"`
	UploadDir        string           `mapstructure:"upload_dir"`
	MaxUploadSize    int64            `mapstructure:"max_upload_size"`
	ClassifierConfig ClassifierConfig `mapstructure:"classifier"`
	OCRConfig        OCRConfig        `mapstructure:"ocr"`
}

// ClassifierConfig controls digital-vs-scanned PDF detection.
type ClassifierConfig struct {
	// SamplePages caps how many pages are probed for a text layer.
	SamplePages int `mapstructure:"sample_pages"`
	// MinTextChars is the aggregate trimmed character count above which a
	// PDF counts as digital.
	MinTextChars int `mapstructure:"min_text_chars"`
}

// OCRConfig controls the Tesseract engine and page rasterization.
type OCRConfig struct {
	Languages []string `mapstructure:"languages"`
	DPI       int      `mapstructure:"dpi"`
}

// DefaultConfig returns the configuration used when no config file is
// present, e.g. by the extract CLI command.
func DefaultConfig() *Config {
	return &Config{
		Port:          "8000",
		UploadDir:     "uploads",
		MaxUploadSize: 50 << 20,
		ClassifierConfig: ClassifierConfig{
			SamplePages:  5,
			MinTextChars: 64,
		},
		OCRConfig: OCRConfig{
			Languages: []string{"eng"},
			DPI:       300,
		},
	}
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("port", defaults.Port)
	v.SetDefault("upload_dir", defaults.UploadDir)
	v.SetDefault("max_upload_size", defaults.MaxUploadSize)
	v.SetDefault("classifier.sample_pages", defaults.ClassifierConfig.SamplePages)
	v.SetDefault("classifier.min_text_chars", defaults.ClassifierConfig.MinTextChars)
	v.SetDefault("ocr.languages", defaults.OCRConfig.Languages)
	v.SetDefault("ocr.dpi", defaults.OCRConfig.DPI)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
