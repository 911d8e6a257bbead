package mcp

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/prmate/prmate/internal/models"
)

type MockPRAgent struct {
	mock.Mock
}

func (m *MockPRAgent) Review(ctx context.Context, rawRef string) (models.ReviewResult, error) {
	args := m.Called(ctx, rawRef)
	return args.Get(0).(models.ReviewResult), args.Error(1)
}

func (m *MockPRAgent) FindBugs(ctx context.Context, rawRef string) (models.ReviewResult, error) {
	args := m.Called(ctx, rawRef)
	return args.Get(0).(models.ReviewResult), args.Error(1)
}

func (m *MockPRAgent) Describe(ctx context.Context, rawRef string) (models.PRSummary, error) {
	args := m.Called(ctx, rawRef)
	return args.Get(0).(models.PRSummary), args.Error(1)
}

func (m *MockPRAgent) Improve(ctx context.Context, rawRef string) (string, *models.TokenUsage, error) {
	args := m.Called(ctx, rawRef)
	return args.String(0), usageArg(args.Get(1)), args.Error(2)
}

func (m *MockPRAgent) Ask(ctx context.Context, rawRef, question string) (string, *models.TokenUsage, error) {
	args := m.Called(ctx, rawRef, question)
	return args.String(0), usageArg(args.Get(1)), args.Error(2)
}

func usageArg(v interface{}) *models.TokenUsage {
	if v == nil {
		return nil
	}
	return v.(*models.TokenUsage)
}
