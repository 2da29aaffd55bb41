package mcp

import "github.com/mark3labs/mcp-go/mcp"

// processQueryTool defines the process_query MCP tool.
var processQueryTool = mcp.NewTool("process_query",
	mcp.WithDescription("Run a natural-language break-glass ticket query. Returns a rendered answer plus structured data."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language query, e.g. 'show my active tickets'"),
	),
	mcp.WithString("user_id",
		mcp.Required(),
		mcp.Description("Identifier of the user the query runs as"),
	),
	mcp.WithBoolean("admin",
		mcp.Description("Run through the admin-trusted entry point (the user must hold the admin role)"),
	),
)

// getCapabilitiesTool defines the get_capabilities MCP tool.
var getCapabilitiesTool = mcp.NewTool("get_capabilities",
	mcp.WithDescription("List the intents and entity types the query pipeline supports for a user."),
	mcp.WithString("user_id",
		mcp.Required(),
		mcp.Description("Identifier of the user to resolve capabilities for"),
	),
)

// getSuggestionsTool defines the get_suggestions MCP tool.
var getSuggestionsTool = mcp.NewTool("get_suggestions",
	mcp.WithDescription("Get example queries and quick actions for discoverability."),
	mcp.WithString("user_id",
		mcp.Description("Optional user identifier; admins receive a wider set"),
	),
)

// getTicketTool defines the get_ticket MCP tool.
var getTicketTool = mcp.NewTool("get_ticket",
	mcp.WithDescription("Fetch one break-glass ticket by its numeric id."),
	mcp.WithString("ticket_id",
		mcp.Required(),
		mcp.Description("Ticket id, digits only or prefixed with #"),
	),
)
