package mcp

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/prmate/prmate/internal/agent"
	"github.com/prmate/prmate/internal/logger"
)

var validate = validator.New()

func (s *Server) initTools() []server.ServerTool {
	tools := []server.ServerTool{}

	tools = append(tools, newServerTool(s.ReviewPR()))
	tools = append(tools, newServerTool(s.DescribePR()))
	tools = append(tools, newServerTool(s.FindBugs()))
	tools = append(tools, newServerTool(s.ImprovePR()))
	tools = append(tools, newServerTool(s.AskPR()))

	return tools
}

type prToolArguments struct {
	PRURL string `json:"pr_url" mapstructure:"pr_url" validate:"required"`
}

type askToolArguments struct {
	PRURL    string `json:"pr_url" mapstructure:"pr_url" validate:"required"`
	Question string `json:"question" mapstructure:"question" validate:"required"`
}

func (s *Server) ReviewPR() (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"review_pr",
			mcp.WithDescription("Review a pull request and provide feedback"),
			mcp.WithString("pr_url", mcp.Required(), mcp.Description("The URL of the pull request to review")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, errResult := s.decodePRArgs(ctx, req)
			if errResult != nil {
				return errResult, nil
			}

			logger.FromContext(ctx).Info("reviewing PR", "pr_url", args.PRURL)

			result, err := s.agent.Review(ctx, args.PRURL)
			if err != nil {
				return mcp.NewToolResultText(s.errorText("error.review_failed", err)), nil
			}

			text := strings.TrimSpace(result.Markdown)
			if text == "" {
				text = s.trans.GetMessage("result.review_empty", 0, nil)
			}
			return mcp.NewToolResultText(text), nil
		}
}

func (s *Server) DescribePR() (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"describe_pr",
			mcp.WithDescription("Generate a description for a pull request based on its changes"),
			mcp.WithString("pr_url", mcp.Required(), mcp.Description("The URL of the pull request to describe")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, errResult := s.decodePRArgs(ctx, req)
			if errResult != nil {
				return errResult, nil
			}

			logger.FromContext(ctx).Info("generating description for PR", "pr_url", args.PRURL)

			summary, err := s.agent.Describe(ctx, args.PRURL)
			if err != nil {
				return mcp.NewToolResultText(s.errorText("error.describe_failed", err)), nil
			}

			text := formatSummary(summary.Title, summary.Body, summary.Labels)
			if text == "" {
				text = s.trans.GetMessage("result.describe_empty", 0, nil)
			}
			return mcp.NewToolResultText(text), nil
		}
}

func (s *Server) FindBugs() (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"find_bugs",
			mcp.WithDescription("Scan a pull request for potential bugs and issues"),
			mcp.WithString("pr_url", mcp.Required(), mcp.Description("The URL of the pull request to scan for bugs")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, errResult := s.decodePRArgs(ctx, req)
			if errResult != nil {
				return errResult, nil
			}

			logger.FromContext(ctx).Info("scanning PR for bugs", "pr_url", args.PRURL)

			result, err := s.agent.FindBugs(ctx, args.PRURL)
			if err != nil {
				return mcp.NewToolResultText(s.errorText("error.bug_scan_failed", err)), nil
			}

			if strings.TrimSpace(result.Markdown) == "" {
				return mcp.NewToolResultText(s.trans.GetMessage("result.bug_scan_empty", 0, nil)), nil
			}

			noBugs := s.trans.GetMessage("result.no_bugs_found", 0, nil)
			return mcp.NewToolResultText(agent.FormatBugReport(result.Markdown, noBugs)), nil
		}
}

func (s *Server) ImprovePR() (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"improve_pr",
			mcp.WithDescription("Suggest improvements for a pull request"),
			mcp.WithString("pr_url", mcp.Required(), mcp.Description("The URL of the pull request to improve")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, errResult := s.decodePRArgs(ctx, req)
			if errResult != nil {
				return errResult, nil
			}

			logger.FromContext(ctx).Info("suggesting improvements for PR", "pr_url", args.PRURL)

			answer, _, err := s.agent.Improve(ctx, args.PRURL)
			if err != nil {
				return mcp.NewToolResultText(s.errorText("error.improve_failed", err)), nil
			}

			if strings.TrimSpace(answer) == "" {
				return mcp.NewToolResultText(s.trans.GetMessage("result.improve_empty", 0, nil)), nil
			}
			return mcp.NewToolResultText(answer), nil
		}
}

func (s *Server) AskPR() (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"ask_pr",
			mcp.WithDescription("Ask a specific question about a pull request"),
			mcp.WithString("pr_url", mcp.Required(), mcp.Description("The URL of the pull request")),
			mcp.WithString("question", mcp.Required(), mcp.Description("The question to ask about the PR")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var args askToolArguments
			if err := mapstructure.Decode(req.Params.Arguments, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := validate.StructCtx(ctx, args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			logger.FromContext(ctx).Info("answering question about PR", "pr_url", args.PRURL)

			answer, _, err := s.agent.Ask(ctx, args.PRURL, args.Question)
			if err != nil {
				return mcp.NewToolResultText(s.errorText("error.ask_failed", err)), nil
			}

			if strings.TrimSpace(answer) == "" {
				return mcp.NewToolResultText(s.trans.GetMessage("result.ask_empty", 0, nil)), nil
			}
			return mcp.NewToolResultText(answer), nil
		}
}

func (s *Server) decodePRArgs(ctx context.Context, req mcp.CallToolRequest) (prToolArguments, *mcp.CallToolResult) {
	var args prToolArguments
	if err := mapstructure.Decode(req.Params.Arguments, &args); err != nil {
		return args, mcp.NewToolResultError(err.Error())
	}
	if err := validate.StructCtx(ctx, args); err != nil {
		return args, mcp.NewToolResultError(err.Error())
	}
	return args, nil
}

func (s *Server) errorText(messageID string, err error) string {
	return s.trans.GetMessage(messageID, 0, map[string]interface{}{
		"Error": err.Error(),
	})
}

func formatSummary(title, body string, labels []string) string {
	var sb strings.Builder
	if title = strings.TrimSpace(title); title != "" {
		sb.WriteString("# ")
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}
	if body = strings.TrimSpace(body); body != "" {
		sb.WriteString(body)
		sb.WriteString("\n")
	}
	if len(labels) > 0 {
		sb.WriteString("\nLabels: ")
		sb.WriteString(strings.Join(labels, ", "))
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}
