package config

import (
	"os"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Paths: PathsConfig{
					Input:  "data/input",
					Output: "data/output",
				},
			},
			wantErr: false,
		},
		{
			name: "missing input path",
			config: Config{
				Paths: PathsConfig{
					Output: "data/output",
				},
			},
			wantErr: true,
		},
		{
			name: "missing output path",
			config: Config{
				Paths: PathsConfig{
					Input: "data/input",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Paths: PathsConfig{Input: "in", Output: "out"},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.STT.Model != "nova-2" {
		t.Errorf("STT.Model = %v, want nova-2", cfg.STT.Model)
	}
	if cfg.STT.TimeoutSeconds != 300 {
		t.Errorf("STT.TimeoutSeconds = %v, want 300", cfg.STT.TimeoutSeconds)
	}
	if cfg.Chunking.SizeThresholdMB != 100 {
		t.Errorf("Chunking.SizeThresholdMB = %v, want 100", cfg.Chunking.SizeThresholdMB)
	}
	if cfg.Chunking.MaxChunkMinutes != 30 {
		t.Errorf("Chunking.MaxChunkMinutes = %v, want 30", cfg.Chunking.MaxChunkMinutes)
	}
	if cfg.Chunking.OverlapMs != 2000 {
		t.Errorf("Chunking.OverlapMs = %v, want 2000", cfg.Chunking.OverlapMs)
	}
	if cfg.Paraphrase.MaxChunkChars != 4000 {
		t.Errorf("Paraphrase.MaxChunkChars = %v, want 4000", cfg.Paraphrase.MaxChunkChars)
	}
	if cfg.TTS.Voice != "czech_male" {
		t.Errorf("TTS.Voice = %v, want czech_male", cfg.TTS.Voice)
	}

	if got := time.Duration(cfg.STT.TimeoutSeconds) * time.Second; got != 5*time.Minute {
		t.Errorf("timeout = %v, want 5m", got)
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
stt:
  api_key: "dg-test"
  model: "nova-2"
  language: "en"

paraphrase:
  api_keys: ["gm-test"]
  style: "formal"

tts:
  endpoint: "https://tts.example.com/synth"
  username: "user"
  password: "pass"
  voice: "czech_female"

chunking:
  size_threshold_mb: 50
  max_chunk_minutes: 10
  overlap_ms: 1500

paths:
  input: "data/input"
  output: "data/output"

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.STT.APIKey != "dg-test" {
		t.Errorf("STT.APIKey = %v, want dg-test", cfg.STT.APIKey)
	}
	if cfg.STT.Language != "en" {
		t.Errorf("STT.Language = %v, want en", cfg.STT.Language)
	}
	if cfg.Chunking.SizeThresholdMB != 50 {
		t.Errorf("SizeThresholdMB = %v, want 50", cfg.Chunking.SizeThresholdMB)
	}
	if cfg.TTS.Voice != "czech_female" {
		t.Errorf("TTS.Voice = %v, want czech_female", cfg.TTS.Voice)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %v, want debug", cfg.Logging.Level)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
