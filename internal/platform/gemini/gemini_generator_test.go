package gemini

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookscribs/scriptbuddy-api/internal/config"
	"github.com/bookscribs/scriptbuddy-api/internal/generation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewGeneratorConfigValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  config.LLMConfig
	}{
		{
			name: "missing API key",
			cfg:  config.LLMConfig{ModelName: "gemini-2.0-flash"},
		},
		{
			name: "missing model name",
			cfg:  config.LLMConfig{GeminiAPIKey: "test-key"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewGenerator(ctx, testLogger(), tc.cfg)
			assert.ErrorIs(t, err, generation.ErrInvalidConfig)
		})
	}
}

func TestNewGeneratorNilLogger(t *testing.T) {
	_, err := NewGenerator(context.Background(), nil, config.LLMConfig{
		GeminiAPIKey: "test-key",
		ModelName:    "gemini-2.0-flash",
	})
	assert.Error(t, err)
}

func TestCreatePrompt(t *testing.T) {
	tmpl, err := template.New("screenplay").Parse(defaultPromptTemplate)
	require.NoError(t, err)

	g := &Generator{
		logger:         testLogger(),
		promptTemplate: tmpl,
	}

	premise := "A detective investigates a theft."
	prompt, err := g.createPrompt(context.Background(), premise)
	require.NoError(t, err)

	assert.Contains(t, prompt, premise)
	assert.Contains(t, prompt, "screenplay format")
}

func TestCreatePromptEmptyPremise(t *testing.T) {
	tmpl, err := template.New("screenplay").Parse(defaultPromptTemplate)
	require.NoError(t, err)

	g := &Generator{
		logger:         testLogger(),
		promptTemplate: tmpl,
	}

	_, err = g.createPrompt(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyPremise)
}

func TestGenerateScriptInputValidation(t *testing.T) {
	tmpl, err := template.New("screenplay").Parse(defaultPromptTemplate)
	require.NoError(t, err)

	g := &Generator{
		logger:         testLogger(),
		promptTemplate: tmpl,
	}

	_, err = g.GenerateScript(context.Background(), "", 100)
	assert.ErrorIs(t, err, generation.ErrGenerationFailed)

	_, err = g.GenerateScript(context.Background(), "A premise.", 0)
	assert.ErrorIs(t, err, generation.ErrGenerationFailed)

	_, err = g.GenerateScript(context.Background(), "A premise.", -10)
	assert.ErrorIs(t, err, generation.ErrGenerationFailed)
}
