package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/recipebox/internal/app"
	"github.com/rpggio/recipebox/internal/domain/navigation"
)

// Controller defines the controller operations needed by MCP.
type Controller interface {
	State() app.State
	Navigate(ctx context.Context, intent navigation.Intent) error
	NavigatePath(ctx context.Context, path string) error
	SetField(ctx context.Context, field, value string) error
	Submit(ctx context.Context) error
	Cancel(ctx context.Context) error
	Delete(ctx context.Context, id string) error
}

// Config contains server configuration.
type Config struct {
	Controller Controller
	Version    string
	Logger     *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "recipebox",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)
	registerViewResource(server, cfg.Controller)

	server.AddReceivingMiddleware(sessionMiddleware())
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Controller)

	return server
}
