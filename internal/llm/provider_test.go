package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_FIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
	)
	mock.AddResponse(MockResponse{Content: json.RawMessage(`{"b":2}`)})

	for i, want := range []string{`{"a":1}`, `{"b":2}`} {
		resp, err := mock.Generate(context.Background(), Request{System: "sys"})
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if string(resp.Content) != want {
			t.Fatalf("call %d: expected %s, got %s", i, want, resp.Content)
		}
	}

	if mock.CallCount() != 2 || mock.Calls[0].System != "sys" {
		t.Fatalf("calls not recorded: %+v", mock.Calls)
	}

	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable on empty queue, got: %T", err)
	}
}

func TestOfflineProvider_SatisfiesSchema(t *testing.T) {
	schema := &Schema{
		Name: "sample",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"level": map[string]any{"type": "string", "enum": []any{"easy", "hard"}},
				"items": map[string]any{
					"type":     "array",
					"minItems": 4,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"word": map[string]any{"type": "string"},
							"rank": map[string]any{"type": "integer"},
						},
						"required": []any{"word", "rank"},
					},
				},
			},
			"required": []any{"title", "level", "items"},
		},
	}

	p := NewOfflineProvider()
	resp, err := p.Generate(context.Background(), Request{Schema: schema})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateResponse(schema, resp.Content); err != nil {
		t.Fatalf("sample does not satisfy schema: %v\n%s", err, resp.Content)
	}

	var got struct {
		Title string `json:"title"`
		Level string `json:"level"`
		Items []struct {
			Word string `json:"word"`
			Rank int    `json:"rank"`
		} `json:"items"`
	}
	if err := json.Unmarshal(resp.Content, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "title 1" || got.Level != "easy" || len(got.Items) != 4 {
		t.Fatalf("unexpected sample: %s", resp.Content)
	}
	if got.Items[3].Word != "word 4" || got.Items[3].Rank != 4 {
		t.Fatalf("unexpected item: %+v", got.Items[3])
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != PurposeUnknown {
		t.Fatalf("expected %q, got %q", PurposeUnknown, p)
	}

	ctx = WithPurpose(ctx, PurposeDeckGeneration)
	if p := PurposeFrom(ctx); p != PurposeDeckGeneration {
		t.Fatalf("expected %q, got %q", PurposeDeckGeneration, p)
	}
}

func TestParsePurpose(t *testing.T) {
	for _, want := range Purposes() {
		got, err := ParsePurpose(string(want))
		if err != nil || got != want {
			t.Fatalf("ParsePurpose(%q) = %q, %v", want, got, err)
		}
	}
	if _, err := ParsePurpose("deck_generation"); err == nil {
		t.Fatal("expected error for unknown purpose")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "sk"}}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "g"}}, false},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_WithSettings(t *testing.T) {
	cfg := DefaultConfig().WithSettings(ProviderOpenRouter, "meta-llama/llama-3-8b", "sk-or", "", 0)
	if cfg.Provider != ProviderOpenRouter {
		t.Fatalf("provider = %q", cfg.Provider)
	}
	if cfg.OpenRouter.Model != "meta-llama/llama-3-8b" || cfg.OpenRouter.APIKey != "sk-or" {
		t.Fatalf("openrouter settings not applied: %+v", cfg.OpenRouter)
	}
	if cfg.Timeout != DefaultConfig().Timeout {
		t.Fatalf("zero timeout should keep default, got %s", cfg.Timeout)
	}

	kept := DefaultConfig().WithSettings("", "", "", "", 0)
	if kept.Provider != ProviderAnthropic || kept.Anthropic.Model != "claude-haiku" {
		t.Fatalf("empty settings should keep defaults: %+v", kept)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENAI_API_KEY", "sk-oai")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "sk-oai" {
		t.Fatalf("expected openai to win over anthropic, got %+v", cfg)
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected mock provider, got %q", p.ModelID())
	}

	if _, err := NewProvider(context.Background(), Config{Provider: "bogus"}, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}

	if _, err := NewProvider(context.Background(), Config{Provider: ProviderOpenAI}, nil); err == nil {
		t.Fatal("expected error for missing key")
	}
}
