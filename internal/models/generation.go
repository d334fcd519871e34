package models

// GenerateRequest asks the generation provider to draft an answer from the
// given question and supporting documents.
type GenerateRequest struct {
	Question    string     `json:"question"`
	Documents   []Document `json:"documents,omitempty"`
	CustomRules string     `json:"custom_rules,omitempty"`
	Model       string     `json:"model,omitempty"`
}

// TokenUsage reports prompt/completion token accounting for one generation.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GeneratedAnswer is the generation provider's response.
type GeneratedAnswer struct {
	Answer       string     `json:"answer"`
	Model        string     `json:"model"`
	TokenUsage   TokenUsage `json:"token_usage"`
	FinishReason string     `json:"finish_reason,omitempty"`
}

// ModelInfo describes an available generation model.
type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MaxTokens   int    `json:"max_tokens,omitempty"`
}

// Health is the health-check response.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
