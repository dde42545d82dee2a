package tts

import "fmt"

// voices maps friendly voice keys to the synthesis engine identifiers.
var voices = map[string]string{
	"czech_male":     "Oldrich30",
	"czech_female":   "Ilona30",
	"english_female": "Emma30",
	"english_male":   "Tim30",
}

// AvailableVoices returns the voice key to engine identifier mapping.
func AvailableVoices() map[string]string {
	out := make(map[string]string, len(voices))
	for k, v := range voices {
		out[k] = v
	}
	return out
}

// resolveVoice maps a voice key to its engine identifier. A raw engine
// identifier is accepted as-is.
func resolveVoice(voice string) (string, error) {
	if engine, ok := voices[voice]; ok {
		return engine, nil
	}
	for _, engine := range voices {
		if engine == voice {
			return voice, nil
		}
	}
	return "", fmt.Errorf("invalid voice %q", voice)
}
