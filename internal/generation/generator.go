package generation

import "context"

// FallbackScript is substituted for the generated script whenever the
// provider yields no usable output. Downstream components (notification,
// lead store) never observe an empty script.
const FallbackScript = "Sorry, the script cannot be generated due to technical issues. Please retry again."

// Generator defines the interface for producing a movie-script excerpt
// from a story premise. This interface serves as a boundary between the
// application core and external AI/LLM services.
//
// Implementations must be safe for concurrent use: one shared Generator
// instance serves every background job without external serialization.
type Generator interface {
	// GenerateScript produces a script excerpt continuing the given
	// premise, bounded by maxLength tokens.
	//
	// Parameters:
	//   - ctx: Context for the operation, which can be used for cancellation
	//   - premise: The submitted story premise to continue
	//   - maxLength: Upper bound on the generated output length
	//
	// Returns the generated text, which may be empty when the model
	// produced nothing usable, or an error (see errors.go for types).
	// Callers are responsible for substituting FallbackScript for empty
	// output before any downstream use.
	GenerateScript(ctx context.Context, premise string, maxLength int) (string, error)
}
