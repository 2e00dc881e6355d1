package llm

import (
	"context"
	"net/http"
	"testing"
)

func TestNewOpenAICompatible(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantErr  bool
		model    string
		provider string
	}{
		{"openai", Config{Provider: ProviderOpenAI, OpenAI: OpenAIConfig{APIKey: "sk", Model: "gpt-4o"}}, false, "gpt-4o", ProviderOpenAI},
		{"openai without key", Config{Provider: ProviderOpenAI}, true, "", ""},
		{"openrouter", Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "sk-or", Model: "google/gemini-2.0-flash-exp"}}, false, "google/gemini-2.0-flash-exp", ProviderOpenRouter},
		{"openrouter model pass-through", Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "sk-or", Model: "gpt-4o"}}, false, "gpt-4o", ProviderOpenRouter},
		{"openrouter without key", Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{Model: "x"}}, true, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := newOpenAICompatible(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if p.ModelID() != tt.model {
				t.Errorf("model = %q, want %q", p.ModelID(), tt.model)
			}
			if got := providerName(p); got != tt.provider {
				t.Errorf("providerName = %q, want %q", got, tt.provider)
			}
		})
	}
}

func TestNewOpenAICompatible_OpenRouterBaseURL(t *testing.T) {
	url := openAIServer(t, http.StatusOK, `{"name":"Numbers","cards":[{"term":"uno","definition":"one"}]}`, "stop", nil)

	p, err := newOpenAICompatible(Config{
		Provider:   ProviderOpenRouter,
		OpenRouter: OpenRouterConfig{APIKey: "sk-or", Model: "meta-llama/llama-3-8b", BaseURL: url},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "numbers"}},
		Schema:    testSchema(),
		MaxTokens: 128,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 {
		t.Fatalf("expected 40 input tokens, got %d", resp.Usage.InputTokens)
	}
}
