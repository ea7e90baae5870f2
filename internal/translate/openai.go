package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const openAIProviderName = "openai"

// OpenAIConfig tunes the OpenAI-backed translation provider.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxRetries  uint
}

// OpenAIProvider translates content through the OpenAI chat completions API.
type OpenAIProvider struct {
	client      openai.Client
	model       string
	temperature float64
	maxRetries  uint
}

func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	model := cfg.Model
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	retries := cfg.MaxRetries
	if retries == 0 {
		retries = 3
	}
	return &OpenAIProvider{
		client:      openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:       model,
		temperature: cfg.Temperature,
		maxRetries:  retries,
	}
}

func (p *OpenAIProvider) Name() string { return openAIProviderName }

func (p *OpenAIProvider) Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error) {
	prompt := translationSystemPrompt(sourceLocale, targetLocale)

	translated, err := retry.DoWithData(func() (string, error) {
		completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(prompt),
				openai.UserMessage(text),
			},
			Model:       openai.ChatModel(p.model),
			Temperature: openai.Float(p.temperature),
		})
		if err != nil {
			return "", err
		}
		if len(completion.Choices) == 0 {
			return "", fmt.Errorf("openai returned no choices")
		}
		return completion.Choices[0].Message.Content, nil
	},
		retry.Attempts(p.maxRetries),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", fmt.Errorf("openai translate: %w", err)
	}
	return strings.TrimSpace(translated), nil
}

// DetectLanguage asks the model which locale a text sample is written in.
// Implements interfaces.LanguageDetector so the service can prefer a model
// answer over the character-range heuristic.
func (p *OpenAIProvider) DetectLanguage(ctx context.Context, text string) (string, error) {
	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("Identify the language of the user's text. Respond with only the two-letter ISO 639-1 code."),
			openai.UserMessage(text),
		},
		Model:       openai.ChatModel(p.model),
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("openai detect language: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	code := strings.ToLower(strings.TrimSpace(completion.Choices[0].Message.Content))
	if len(code) < 2 {
		return "", fmt.Errorf("openai detect language: unexpected response %q", code)
	}
	return code[:2], nil
}

func translationSystemPrompt(sourceLocale, targetLocale string) string {
	return fmt.Sprintf(
		"You are a professional translator. Translate the user's text from %s to %s. "+
			"The text may contain multiple segments separated by a line containing only \"---\". "+
			"Translate each segment and keep the separator lines exactly as they are. "+
			"Preserve formatting and placeholders. Respond with the translation only.",
		sourceLocale, targetLocale,
	)
}
