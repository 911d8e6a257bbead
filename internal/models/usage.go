package models

// TokenUsage reports the token consumption of a single model call.
type TokenUsage struct {
	Model        string
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
