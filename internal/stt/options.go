package stt

import "time"

// Options are the transcription parameters sent with every request.
type Options struct {
	Model       string
	Language    string
	Punctuate   bool
	Diarize     bool
	SmartFormat bool
	Utterances  bool
	Timeout     time.Duration
}

// Overrides carries optional per-call parameter replacements. Nil fields
// keep the base value.
type Overrides struct {
	Model       *string
	Language    *string
	Punctuate   *bool
	Diarize     *bool
	SmartFormat *bool
	Utterances  *bool
	Timeout     *time.Duration
}

// DefaultOptions returns the base transcription configuration.
func DefaultOptions() Options {
	return Options{
		Model:       "nova-2",
		Language:    "cs",
		Punctuate:   true,
		Diarize:     true,
		SmartFormat: true,
		Utterances:  true,
		Timeout:     300 * time.Second,
	}
}

// Apply overlays the overrides onto a copy of the options. The receiver
// is never mutated; every call produces a fresh configuration value.
func (o Options) Apply(ov Overrides) Options {
	if ov.Model != nil {
		o.Model = *ov.Model
	}
	if ov.Language != nil {
		o.Language = *ov.Language
	}
	if ov.Punctuate != nil {
		o.Punctuate = *ov.Punctuate
	}
	if ov.Diarize != nil {
		o.Diarize = *ov.Diarize
	}
	if ov.SmartFormat != nil {
		o.SmartFormat = *ov.SmartFormat
	}
	if ov.Utterances != nil {
		o.Utterances = *ov.Utterances
	}
	if ov.Timeout != nil {
		o.Timeout = *ov.Timeout
	}
	return o
}

// Language pairs a language code with its display name.
type Language struct {
	Code string
	Name string
}

// AvailableModels lists the transcription models the service supports.
func AvailableModels() []string {
	return []string{"nova-2", "whisper-large", "whisper-medium", "whisper-small", "whisper-tiny"}
}

// AvailableLanguages lists the supported transcription languages.
func AvailableLanguages() []Language {
	return []Language{
		{Code: "cs", Name: "Čeština"},
		{Code: "en", Name: "Angličtina"},
	}
}
