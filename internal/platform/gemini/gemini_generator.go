package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"text/template"
	"time"

	"google.golang.org/genai"

	"github.com/bookscribs/scriptbuddy-api/internal/config"
	"github.com/bookscribs/scriptbuddy-api/internal/generation"
)

// Sampling parameters for screenplay generation. These mirror the
// sampling setup the product was tuned with (top-k 50, top-p 0.95).
const (
	samplingTemperature float32 = 0.9
	samplingTopK        float32 = 50
	samplingTopP        float32 = 0.95
)

// Generator implements the generation.Generator interface using Google's
// Gemini API to produce movie-script excerpts from story premises.
//
// The underlying genai client is safe for concurrent calls and Generator
// keeps no per-call mutable state, so a single shared instance serves
// every background job without external serialization.
type Generator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// promptTemplate is the parsed template for creating prompts
	promptTemplate *template.Template

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// Ensure Generator implements the generation.Generator interface
var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a new Gemini-backed Generator with the provided
// dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, and retry settings
//
// Returns:
//   - A properly initialized Generator or an error if initialization fails
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	// Validate configuration
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("screenplay").Parse(defaultPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:         logger,
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
	}, nil
}

// createPrompt generates a prompt string from the template with the provided premise.
//
// Parameters:
//   - ctx: Context for the operation, used for logging
//   - premise: The story premise to include in the prompt
//
// Returns:
//   - The generated prompt string
//   - An error if the premise is empty or the template execution fails
func (g *Generator) createPrompt(ctx context.Context, premise string) (string, error) {
	if premise == "" {
		return "", ErrEmptyPremise
	}

	g.logger.DebugContext(ctx, "Generating prompt from template",
		"premise_length", len(premise),
		"template_name", g.promptTemplate.Name())

	var promptBuffer bytes.Buffer
	if err := g.promptTemplate.Execute(&promptBuffer, promptData{Premise: premise}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return promptBuffer.String(), nil
}

// callGeminiWithRetry makes a call to the Gemini API with exponential backoff
// retry logic.
//
// It attempts the call up to config.MaxRetries times, using exponential
// backoff with jitter between retries for transient errors. Permanent errors
// (like content being blocked by safety filters) are returned immediately.
//
// Parameters:
//   - ctx: Context for the operation, used for cancellation and logging
//   - prompt: The prompt string to send to the Gemini API
//   - maxLength: Upper bound on generated output tokens
//
// Returns:
//   - The extracted response text (possibly empty)
//   - An error if all retries fail or a permanent error occurs
func (g *Generator) callGeminiWithRetry(ctx context.Context, prompt string, maxLength int) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPremise
	}

	maxRetries := g.config.MaxRetries
	baseDelaySeconds := g.config.RetryDelaySeconds
	attempt := 0
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "Invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}

	if baseDelaySeconds < 1 {
		g.logger.WarnContext(ctx, "Invalid retry delay value, using default", "base_delay_seconds", 2)
		baseDelaySeconds = 2
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(samplingTemperature),
		TopK:            genai.Ptr(samplingTopK),
		TopP:            genai.Ptr(samplingTopP),
		MaxOutputTokens: int32(maxLength),
	}

	for attempt <= maxRetries {
		attemptNum := attempt + 1 // For logging (1-based)
		g.logger.InfoContext(ctx, "Making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		var text string
		var isTransientError bool

		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genConfig)
		if err != nil {
			// API transport errors are assumed transient by default
			isTransientError = true
			g.logger.ErrorContext(ctx, "Gemini API call error",
				"error", err,
				"attempt", attemptNum)
		} else if resp == nil {
			err = fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
		} else if len(resp.Candidates) == 0 {
			err = fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
		} else if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
			err = fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
		} else if resp.Candidates[0].Content == nil {
			err = fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
		} else {
			text = extractText(resp.Candidates[0].Content)
		}

		if err == nil {
			g.logger.InfoContext(ctx, "Gemini API call successful",
				"attempt", attemptNum,
				"response_length", len(text))
			return text, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		// Permanent errors are returned immediately
		if errors.Is(err, generation.ErrContentBlocked) || errors.Is(err, generation.ErrInvalidResponse) {
			g.logger.WarnContext(ctx, "Permanent error occurred, not retrying")
			return "", err
		}

		if attempt >= maxRetries {
			g.logger.WarnContext(ctx, "Maximum retry attempts reached",
				"max_retries", maxRetries)
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}

		if !isTransientError {
			g.logger.WarnContext(ctx, "Non-transient error occurred, not retrying")
			return "", err
		}

		// Calculate exponential backoff with jitter
		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delaySeconds := backoffSeconds * jitterFactor
		delay := time.Duration(delaySeconds * float64(time.Second))

		g.logger.InfoContext(ctx, "Retrying after delay",
			"attempt", attemptNum,
			"delay_seconds", delaySeconds)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			g.logger.WarnContext(ctx, "API call cancelled during retry delay",
				"attempt", attemptNum,
				"ctx_err", ctx.Err())
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}

		attempt++
	}

	return "", fmt.Errorf("%w: failed after %d attempts",
		generation.ErrTransientFailure, attempt)
}

// extractText concatenates the text parts of a response content.
func extractText(content *genai.Content) string {
	var sb strings.Builder
	for _, part := range content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

// GenerateScript produces a movie-script excerpt continuing the given
// premise, bounded by maxLength output tokens.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - premise: The submitted story premise to continue
//   - maxLength: Upper bound on the generated output length
//
// Returns the generated text (empty when the model produced nothing
// usable) or an error. Fallback substitution for empty output is the
// caller's responsibility, per the generation.Generator contract.
func (g *Generator) GenerateScript(ctx context.Context, premise string, maxLength int) (string, error) {
	if premise == "" {
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, ErrEmptyPremise)
	}

	if maxLength <= 0 {
		return "", fmt.Errorf("%w: max length must be positive, got %d",
			generation.ErrGenerationFailed, maxLength)
	}

	prompt, err := g.createPrompt(ctx, premise)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	text, err := g.callGeminiWithRetry(ctx, prompt, maxLength)
	if err != nil {
		return "", err
	}

	return text, nil
}
