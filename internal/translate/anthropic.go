package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/avast/retry-go/v4"
)

const anthropicProviderName = "anthropic"

// AnthropicConfig tunes the Anthropic-backed translation provider.
type AnthropicConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int64
	Temperature float64
	MaxRetries  uint
}

// AnthropicProvider translates content through the Anthropic messages API.
type AnthropicProvider struct {
	client      sdk.Client
	model       string
	maxTokens   int64
	temperature float64
	maxRetries  uint
}

func NewAnthropicProvider(cfg AnthropicConfig) *AnthropicProvider {
	model := cfg.Model
	if model == "" {
		model = string(sdk.ModelClaudeSonnet4_0)
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}
	retries := cfg.MaxRetries
	if retries == 0 {
		retries = 3
	}
	return &AnthropicProvider{
		client:      sdk.NewClient(anthropicoption.WithAPIKey(cfg.APIKey)),
		model:       model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		maxRetries:  retries,
	}
}

func (p *AnthropicProvider) Name() string { return anthropicProviderName }

func (p *AnthropicProvider) Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error) {
	prompt := translationSystemPrompt(sourceLocale, targetLocale)

	translated, err := retry.DoWithData(func() (string, error) {
		msg, err := p.client.Messages.New(ctx, sdk.MessageNewParams{
			Model:     sdk.Model(p.model),
			MaxTokens: p.maxTokens,
			System: []sdk.TextBlockParam{
				{Text: prompt},
			},
			Messages: []sdk.MessageParam{
				sdk.NewUserMessage(sdk.NewTextBlock(text)),
			},
			Temperature: sdk.Float(p.temperature),
		})
		if err != nil {
			return "", err
		}

		var out strings.Builder
		for _, block := range msg.Content {
			out.WriteString(block.Text)
		}
		if out.Len() == 0 {
			return "", fmt.Errorf("anthropic returned no content")
		}
		return out.String(), nil
	},
		retry.Attempts(p.maxRetries),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", fmt.Errorf("anthropic translate: %w", err)
	}
	return strings.TrimSpace(translated), nil
}
