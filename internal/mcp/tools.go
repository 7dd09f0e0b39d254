package mcp

import "github.com/mark3labs/mcp-go/mcp"

func createToolDef() mcp.Tool {
	return mcp.NewTool("string_create",
		mcp.WithDescription("Analyze a string and store it. Fails if the exact value is already stored."),
		mcp.WithString("value", mcp.Required(), mcp.Description("Text to analyze and store")),
	)
}

func getToolDef() mcp.Tool {
	return mcp.NewTool("string_get",
		mcp.WithDescription("Fetch a stored string by id (SHA-256) or by exact value. Specify exactly one."),
		mcp.WithString("id", mcp.Description("SHA-256 hex id of the value")),
		mcp.WithString("value", mcp.Description("Exact stored value")),
	)
}

func deleteToolDef() mcp.Tool {
	return mcp.NewTool("string_delete",
		mcp.WithDescription("Permanently delete a stored string by id or by exact value. Specify exactly one."),
		mcp.WithString("id", mcp.Description("SHA-256 hex id of the value")),
		mcp.WithString("value", mcp.Description("Exact stored value")),
	)
}

func listToolDef() mcp.Tool {
	return mcp.NewTool("string_list",
		mcp.WithDescription("List stored strings in insertion order. All filters are optional and combine with AND."),
		mcp.WithBoolean("is_palindrome", mcp.Description("Only palindromes (true) or non-palindromes (false)")),
		mcp.WithNumber("min_length", mcp.Description("Minimum length in characters")),
		mcp.WithNumber("max_length", mcp.Description("Maximum length in characters")),
		mcp.WithNumber("word_count", mcp.Description("Exact number of words")),
		mcp.WithString("contains_character", mcp.Description("A single character the value must contain (case-sensitive)")),
	)
}

func searchToolDef() mcp.Tool {
	return mcp.NewTool("string_search",
		mcp.WithDescription(`Filter stored strings with a short English phrase, e.g. "single word palindromic strings" or "strings longer than 10 characters".`),
		mcp.WithString("query", mcp.Required(), mcp.Description("Natural-language filter phrase")),
	)
}

func analyzeToolDef() mcp.Tool {
	return mcp.NewTool("string_analyze",
		mcp.WithDescription("Compute string properties without storing anything."),
		mcp.WithString("value", mcp.Required(), mcp.Description("Text to analyze")),
	)
}

func translateToolDef() mcp.Tool {
	return mcp.NewTool("query_translate",
		mcp.WithDescription("Show the filters a natural-language phrase translates to, without running it."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Natural-language filter phrase")),
	)
}
