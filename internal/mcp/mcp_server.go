// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/davemolk/sircast/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the sircast MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, loader contract.DatasetLoader) *server.MCPServer {
	s := server.NewMCPServer(
		"Sircast Pipeline Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		loader:  loader,
	}

	// --- 1. Tool: compose_compartments ---
	s.AddTool(mcp.NewTool("compose_compartments",
		mcp.WithDescription("Run the full pipeline: normalize surveillance datasets, derive prevalence per compartment, and compose S/I/R/H/D tables per location."),
		mcp.WithString("cases", mcp.Description("Path to the case counts dataset."), mcp.Required()),
		mcp.WithString("deaths", mcp.Description("Path to the death counts dataset (enables R and D compartments).")),
		mcp.WithString("hosp", mcp.Description("Path to the hospitalization counts dataset (enables the H compartment).")),
		mcp.WithString("location", mcp.Description("Restrict output to one location.")),
		mcp.WithNumber("population", mcp.Description("Total population for the susceptible residual.")),
		mcp.WithNumber("infection_window", mcp.Description("Infectious period length in period units.")),
		mcp.WithNumber("hosp_window", mcp.Description("Hospital stay length in period units.")),
	), h.handleComposeCompartments)

	// --- 2. Tool: convert_to_prevalence ---
	s.AddTool(mcp.NewTool("convert_to_prevalence",
		mcp.WithDescription("Convert a single incidence or cumulative series to rolling-window prevalence."),
		mcp.WithString("input", mcp.Description("Path to the input dataset."), mcp.Required()),
		mcp.WithString("value_column", mcp.Description("Column holding the counts. Defaults to 'value'.")),
		mcp.WithBoolean("cumulative", mcp.Description("Whether the input counts are cumulative.")),
		mcp.WithNumber("window", mcp.Description("Rolling window length in period units."), mcp.Required()),
		mcp.WithString("location", mcp.Description("Restrict output to one location.")),
	), h.handleConvertToPrevalence)

	// --- 3. Tool: describe_dataset ---
	s.AddTool(mcp.NewTool("describe_dataset",
		mcp.WithDescription("Summarize a raw dataset column by column: distinct counts and sample values, for choosing a column mapping."),
		mcp.WithString("input", mcp.Description("Path to the dataset to describe."), mcp.Required()),
	), h.handleDescribeDataset)

	return s
}

// StartMCPServer starts the sircast MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, loader contract.DatasetLoader) error {
	s := NewMCPServer(baseCfg, loader)
	return server.ServeStdio(s)
}
