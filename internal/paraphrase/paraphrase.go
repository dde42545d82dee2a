package paraphrase

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const systemInstruction = "You are an expert paraphrasing assistant. Your task is to paraphrase text in %s while maintaining the original meaning."

const promptTemplate = `Paraphrase the following text in %s. %s
Original text:
%s
Paraphrased version:`

// Style pairs a style code with its display name.
type Style struct {
	Code string
	Name string
}

// Language pairs a language code with its display name.
type Language struct {
	Code string
	Name string
}

// AvailableStyles lists the supported paraphrasing styles.
func AvailableStyles() []Style {
	return []Style{
		{Code: "standard", Name: "Standardní"},
		{Code: "formal", Name: "Formální"},
		{Code: "simple", Name: "Zjednodušený"},
		{Code: "creative", Name: "Kreativní"},
		{Code: "academic", Name: "Akademický"},
	}
}

// AvailableLanguages lists the supported paraphrasing languages.
func AvailableLanguages() []Language {
	return []Language{
		{Code: "cs", Name: "Čeština"},
		{Code: "en", Name: "Angličtina"},
	}
}

var styleInstructions = map[string]string{
	"standard": "Maintain a balanced tone and similar complexity to the original.",
	"formal":   "Use formal language and academic tone.",
	"simple":   "Simplify the language and make it easier to understand.",
	"creative": "Use more creative and expressive language.",
	"academic": "Use academic terminology and formal structure.",
}

// Paraphrase rewrites one text unit through the language model.
func (p *implParaphraser) Paraphrase(ctx context.Context, text string, opts Options) (string, error) {
	prompt := buildPrompt(text, opts)
	return p.callModel(ctx, prompt, languageName(opts.Language))
}

func buildPrompt(text string, opts Options) string {
	return fmt.Sprintf(promptTemplate, languageName(opts.Language), styleInstruction(opts.Style), text)
}

func styleInstruction(style string) string {
	if instruction, ok := styleInstructions[style]; ok {
		return instruction
	}
	return styleInstructions["standard"]
}

func languageName(code string) string {
	for _, lang := range AvailableLanguages() {
		if lang.Code == code {
			return lang.Name
		}
	}
	return "Čeština"
}

// callModel sends the prompt to the model and returns the rewritten text.
// Rotates API keys on 429 / quota errors.
func (p *implParaphraser) callModel(ctx context.Context, prompt, language string) (string, error) {
	attempts := len(p.apiKeys)
	var lastErr error

	for range attempts {
		idx := p.keyIndex()
		key := p.apiKeys[idx]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			p.rotateKey()
			continue
		}

		cfg := &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(fmt.Sprintf(systemInstruction, language), genai.RoleUser),
		}

		result, err := client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), cfg)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				p.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				p.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return strings.TrimSpace(text), nil
		}

		return "", fmt.Errorf("empty response from model")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

// keyIndex returns the index of the currently active API key.
func (p *implParaphraser) keyIndex() int {
	return int(p.rotations.Load() % int64(len(p.apiKeys)))
}

func (p *implParaphraser) rotateKey() {
	p.rotations.Add(1)
}
