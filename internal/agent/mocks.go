package agent

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/prmate/prmate/internal/models"
)

type MockVCSClient struct {
	mock.Mock
}

func (m *MockVCSClient) GetPR(ctx context.Context, ref models.PRReference) (models.PRData, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(models.PRData), args.Error(1)
}

func (m *MockVCSClient) UpdatePR(ctx context.Context, ref models.PRReference, summary models.PRSummary) error {
	args := m.Called(ctx, ref, summary)
	return args.Error(0)
}

type MockAIProvider struct {
	mock.Mock
}

func (m *MockAIProvider) GeneratePRReview(ctx context.Context, prompt string) (models.ReviewResult, error) {
	args := m.Called(ctx, prompt)
	return args.Get(0).(models.ReviewResult), args.Error(1)
}

func (m *MockAIProvider) GeneratePRSummary(ctx context.Context, prompt string) (models.PRSummary, error) {
	args := m.Called(ctx, prompt)
	return args.Get(0).(models.PRSummary), args.Error(1)
}

func (m *MockAIProvider) GenerateAnswer(ctx context.Context, prompt string) (string, *models.TokenUsage, error) {
	args := m.Called(ctx, prompt)
	var usage *models.TokenUsage
	if args.Get(1) != nil {
		usage = args.Get(1).(*models.TokenUsage)
	}
	return args.String(0), usage, args.Error(2)
}
