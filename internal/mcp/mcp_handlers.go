package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/davemolk/sircast/core"
	"github.com/davemolk/sircast/internal/contract"
	"github.com/davemolk/sircast/internal/loader"
	"github.com/davemolk/sircast/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	loader  contract.DatasetLoader
}

func (h *toolHandler) handleComposeCompartments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Cases.Path = request.GetString("cases", "")
	if cfg.Cases.Path == "" {
		return mcp.NewToolResultError("cases dataset path is required"), nil
	}
	if p := request.GetString("deaths", ""); p != "" {
		cfg.Deaths.Path = p
	}
	if p := request.GetString("hosp", ""); p != "" {
		cfg.Hosp.Path = p
	}
	if l := request.GetString("location", ""); l != "" {
		cfg.LocationFilter = l
	}
	if p := request.GetInt("population", 0); p > 0 {
		cfg.Population = float64(p)
	}
	if w := request.GetInt("infection_window", 0); w > 0 {
		cfg.Windows.Infection = w
	}
	if w := request.GetInt("hosp_window", 0); w > 0 {
		cfg.Windows.Hospitalization = w
	}

	output, err := core.GetComposeResults(cfg, h.loader)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("pipeline failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(output, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleConvertToPrevalence(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Input.Path = request.GetString("input", "")
	if cfg.Input.Path == "" {
		return mcp.NewToolResultError("input dataset path is required"), nil
	}
	if c := request.GetString("value_column", ""); c != "" {
		cfg.Input.ValueColumn = c
	}
	if request.GetBool("cumulative", false) {
		cfg.Input.Cumulative = true
		cfg.Input.Kind = schema.CumulativeCases
	}
	if l := request.GetString("location", ""); l != "" {
		cfg.LocationFilter = l
	}

	cfg.Window = request.GetInt("window", 0)
	if cfg.Window <= 0 {
		return mcp.NewToolResultError("window must be at least 1"), nil
	}

	results, err := core.GetPrevalenceResults(cfg, h.loader)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("prevalence conversion failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDescribeDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("input", "")
	if path == "" {
		return mcp.NewToolResultError("input dataset path is required"), nil
	}

	raw, err := h.loader.Load(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err)), nil
	}

	summary := loader.Describe(raw)
	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
