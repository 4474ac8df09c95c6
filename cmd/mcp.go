package main

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/crm-tools/internal/tools"
)

const serverVersion = "0.3.0"

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the tool set over MCP on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initService(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		server := mcp.NewServer(&mcp.Implementation{
			Name:    "crm-tools",
			Version: serverVersion,
		}, nil)

		for _, t := range env.Registry.Tools() {
			registerMCPTool(server, env.Registry, t)
		}

		zap.L().Info("mcp server listening on stdio", zap.Int("tools", len(env.Registry.Tools())))
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
			return eris.Wrap(err, "mcp server")
		}

		return nil
	},
}

// registerMCPTool bridges one registry tool onto the MCP server. The tool
// result envelope is serialized as a single JSON text block; MCP-level
// errors are reserved for encoding failures.
func registerMCPTool(server *mcp.Server, reg *tools.Registry, t *tools.Tool) {
	server.AddTool(&mcp.Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: t.InputSchema,
	}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, err := reg.Invoke(ctx, t.Name, req.Params.Arguments)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, eris.Wrapf(err, "encode %s result", t.Name)
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(encoded)}},
		}, nil
	})
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
