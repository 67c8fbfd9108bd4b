package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name, falling back
	// to an embedded default when no user-edited file exists.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptAnswer instructs the model to answer from retrieved context.
	// The template expects %s (context) and %s (question) placeholders.
	PromptAnswer = "answer"
)
