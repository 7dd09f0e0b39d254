package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/tally/internal/config"
	"github.com/hpungsan/tally/internal/errors"
	"github.com/hpungsan/tally/internal/ops"
	"github.com/hpungsan/tally/internal/record"
	"github.com/hpungsan/tally/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store store.Store
	cfg   *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st store.Store, cfg *config.Config) *Handlers {
	return &Handlers{store: st, cfg: cfg}
}

// Request types for each tool

// AddressRequest identifies a stored string for get and delete.
type AddressRequest struct {
	ID    string `json:"id,omitempty"`
	Value string `json:"value,omitempty"`
}

// ListRequest represents the arguments for list.
type ListRequest struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// QueryRequest represents the arguments for search and translate.
type QueryRequest struct {
	Query string `json:"query"`
}

// Handler implementations

// HandleCreate handles the string_create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, ok := req.GetArguments()["value"]
	result, err := ops.Create(ctx, h.store, h.cfg, ops.CreateInput{Value: value, Provided: ok})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleGet handles the string_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddressRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidInput(err.Error())), nil
	}

	result, err := ops.Get(ctx, h.store, ops.GetInput{ID: input.ID, Value: input.Value})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleDelete handles the string_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddressRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidInput(err.Error())), nil
	}

	result, err := ops.Delete(ctx, h.store, ops.DeleteInput{ID: input.ID, Value: input.Value})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleList handles the string_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidInput(err.Error())), nil
	}

	result, err := ops.Filter(ctx, h.store, record.Filters{
		IsPalindrome:      input.IsPalindrome,
		MinLength:         input.MinLength,
		MaxLength:         input.MaxLength,
		WordCount:         input.WordCount,
		ContainsCharacter: input.ContainsCharacter,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSearch handles the string_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[QueryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidInput(err.Error())), nil
	}

	result, err := ops.Search(ctx, h.store, ops.SearchInput{Query: input.Query})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleAnalyze handles the string_analyze tool call.
func (h *Handlers) HandleAnalyze(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, ok := req.GetArguments()["value"]
	result, err := ops.Analyze(h.cfg, ops.CreateInput{Value: value, Provided: ok})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleTranslate handles the query_translate tool call.
func (h *Handlers) HandleTranslate(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[QueryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidInput(err.Error())), nil
	}

	result, err := ops.Translate(input.Query)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are never exposed.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if tErr, ok := errors.As(err); ok {
		message := tErr.Message
		if err != error(tErr) {
			// keep wrapper context such as "items[2]: ..."
			message = err.Error()
		}
		errorObj := map[string]any{
			"code":    tErr.Code,
			"message": message,
			"status":  tErr.Status,
		}
		if tErr.Code != errors.ErrInternal && tErr.Details != nil {
			errorObj["details"] = tErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
