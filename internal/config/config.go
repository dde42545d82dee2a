package config

import "fmt"

type Config struct {
	STT         STTConfig         `yaml:"stt"`
	Paraphrase  ParaphraseConfig  `yaml:"paraphrase"`
	TTS         TTSConfig         `yaml:"tts"`
	Chunking    ChunkingConfig    `yaml:"chunking"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type STTConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	Language       string `yaml:"language"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type ParaphraseConfig struct {
	APIKeys       []string `yaml:"api_keys"`
	Model         string   `yaml:"model"`
	Style         string   `yaml:"style"`
	Language      string   `yaml:"language"`
	MaxChunkChars int      `yaml:"max_chunk_chars"`
}

type TTSConfig struct {
	Endpoint      string `yaml:"endpoint"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	Voice         string `yaml:"voice"`
	Format        string `yaml:"format"`
	MaxChunkChars int    `yaml:"max_chunk_chars"`
}

type ChunkingConfig struct {
	SizeThresholdMB float64 `yaml:"size_threshold_mb"`
	MaxChunkMinutes int     `yaml:"max_chunk_minutes"`
	OverlapMs       int     `yaml:"overlap_ms"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.STT.BaseURL == "" {
		c.STT.BaseURL = "https://api.deepgram.com/v1/listen"
	}
	if c.STT.Model == "" {
		c.STT.Model = "nova-2"
	}
	if c.STT.Language == "" {
		c.STT.Language = "cs"
	}
	if c.STT.TimeoutSeconds == 0 {
		c.STT.TimeoutSeconds = 300
	}
	if c.Paraphrase.Model == "" {
		c.Paraphrase.Model = "gemini-2.5-flash"
	}
	if c.Paraphrase.Style == "" {
		c.Paraphrase.Style = "standard"
	}
	if c.Paraphrase.Language == "" {
		c.Paraphrase.Language = "cs"
	}
	if c.Paraphrase.MaxChunkChars == 0 {
		c.Paraphrase.MaxChunkChars = 4000
	}
	if c.TTS.Voice == "" {
		c.TTS.Voice = "czech_male"
	}
	if c.TTS.Format == "" {
		c.TTS.Format = "wav"
	}
	if c.TTS.MaxChunkChars == 0 {
		c.TTS.MaxChunkChars = 4000
	}
	if c.Chunking.SizeThresholdMB == 0 {
		c.Chunking.SizeThresholdMB = 100
	}
	if c.Chunking.MaxChunkMinutes == 0 {
		c.Chunking.MaxChunkMinutes = 30
	}
	if c.Chunking.OverlapMs == 0 {
		c.Chunking.OverlapMs = 2000
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
