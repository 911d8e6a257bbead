package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerPrompts(mcpServer *server.MCPServer) {
	mcpServer.AddPrompt(mcp.NewPrompt(
		"pr_review_prompt",
		mcp.WithPromptDescription("Create a prompt for reviewing a pull request"),
		mcp.WithArgument("pr_url", mcp.RequiredArgument(), mcp.ArgumentDescription("The URL of the pull request to review")),
	), handleReviewPrompt)

	mcpServer.AddPrompt(mcp.NewPrompt(
		"pr_improvement_prompt",
		mcp.WithPromptDescription("Create a prompt for suggesting improvements to a pull request"),
		mcp.WithArgument("pr_url", mcp.RequiredArgument(), mcp.ArgumentDescription("The URL of the pull request to improve")),
	), handleImprovementPrompt)
}

func handleReviewPrompt(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	prURL := req.Params.Arguments["pr_url"]
	if prURL == "" {
		return nil, fmt.Errorf("pr_url is required")
	}

	text := fmt.Sprintf(`Please review the following pull request: %s

Some things to consider:
- Code correctness
- Performance improvements
- Security concerns
- Design issues
- Documentation updates needed`, prURL)

	return mcp.NewGetPromptResult(
		"Pull request review prompt",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

func handleImprovementPrompt(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	prURL := req.Params.Arguments["pr_url"]
	if prURL == "" {
		return nil, fmt.Errorf("pr_url is required")
	}

	text := fmt.Sprintf(`Please suggest improvements for the following pull request: %s

Focus on:
- Code quality
- Performance optimizations
- Better design patterns
- Potential edge cases
- Security improvements`, prURL)

	return mcp.NewGetPromptResult(
		"Pull request improvement prompt",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}
