package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/recipebox/internal/app"
	"github.com/rpggio/recipebox/internal/domain/identity"
	"github.com/rpggio/recipebox/internal/domain/recipe"
	"github.com/rpggio/recipebox/internal/sqlite"
	"github.com/stretchr/testify/require"
)

// newTestSession starts a controller on an in-memory store and connects an
// MCP client to a server wrapping it.
func newTestSession(t *testing.T) (*sdkmcp.ClientSession, *app.Controller) {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	store := sqlite.NewCollection(db, nil)
	ctrl := app.NewController(
		identity.NewService(sqlite.NewIdentities(db), "", nil),
		recipe.NewService(store, nil),
		nil, nil,
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ctrl.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	require.Eventually(t, func() bool {
		s := ctrl.State()
		return s.Auth == identity.StatusAuthenticated && !s.Loading
	}, 2*time.Second, 10*time.Millisecond)

	server := NewServer(Config{Controller: ctrl})
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session, ctrl
}

func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) (*sdkmcp.CallToolResult, ScreenResult) {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	result, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotNil(t, result)

	var screen ScreenResult
	if !result.IsError {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &screen))
	}
	return result, screen
}

func resultText(result *sdkmcp.CallToolResult) string {
	var b strings.Builder
	for _, content := range result.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			b.WriteString(text.Text)
		}
	}
	return b.String()
}

func TestServer_ListTools(t *testing.T) {
	session, _ := newTestSession(t)

	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"view", "navigate", "go_home", "go_create", "go_detail", "go_edit",
		"set_field", "submit", "cancel", "delete_recipe",
	}, names)
}

func TestServer_CreateRecipeFlow(t *testing.T) {
	session, ctrl := newTestSession(t)

	result, screen := callTool(t, session, "view", nil)
	require.False(t, result.IsError)
	require.Equal(t, "list", screen.Screen)
	require.Contains(t, resultText(result), "My Recipes (Total: 0)")

	_, screen = callTool(t, session, "go_create", nil)
	require.Equal(t, "create", screen.Screen)
	require.Equal(t, "/create", screen.Path)

	result, screen = callTool(t, session, "submit", nil)
	require.False(t, result.IsError)
	require.Equal(t, "create", screen.Screen)
	require.Len(t, screen.FieldErrors, 3)

	for field, value := range map[string]string{
		"name":         "Soup",
		"ingredients":  "water, salt",
		"instructions": "Boil.",
		"rating":       "5",
	} {
		result, _ = callTool(t, session, "set_field", map[string]any{"field": field, "value": value})
		require.False(t, result.IsError, resultText(result))
	}

	_, screen = callTool(t, session, "submit", nil)
	require.Empty(t, screen.FieldErrors)

	require.Eventually(t, func() bool {
		s := ctrl.State()
		return s.Nav.Screen == "list" && len(s.Recipes) == 1
	}, 2*time.Second, 10*time.Millisecond)

	result, screen = callTool(t, session, "view", nil)
	require.Len(t, screen.Recipes, 1)
	require.Equal(t, "Soup", screen.Recipes[0].Name)
	require.Contains(t, resultText(result), "★★★★★")

	id := screen.Recipes[0].ID
	result, screen = callTool(t, session, "navigate", map[string]any{"path": "/recipe/" + id})
	require.Equal(t, "detail", screen.Screen)
	require.Contains(t, resultText(result), "  - salt")

	callTool(t, session, "delete_recipe", map[string]any{"id": id})
	require.Eventually(t, func() bool {
		s := ctrl.State()
		return s.Nav.Screen == "list" && len(s.Recipes) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServer_ToolErrors(t *testing.T) {
	session, _ := newTestSession(t)

	result, _ := callTool(t, session, "cancel", nil)
	require.True(t, result.IsError)
	require.Contains(t, resultText(result), "NO_FORM")

	_, screen := callTool(t, session, "navigate", map[string]any{"path": "/nowhere"})
	require.Equal(t, "not_found", screen.Screen)

	result, _ = callTool(t, session, "go_create", nil)
	require.True(t, result.IsError)
	require.Contains(t, resultText(result), "PAGE_NOT_FOUND")

	_, screen = callTool(t, session, "go_home", nil)
	require.Equal(t, "list", screen.Screen)

	callTool(t, session, "go_create", nil)
	result, _ = callTool(t, session, "set_field", map[string]any{"field": "id", "value": "x"})
	require.True(t, result.IsError)
	require.Contains(t, resultText(result), "UNKNOWN_FIELD")
}

func TestServer_ReadResources(t *testing.T) {
	session, _ := newTestSession(t)
	ctx := context.Background()

	res, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: viewResourceURI})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "Recipe Manager")
	require.Contains(t, res.Contents[0].Text, "My Recipes")

	res, err = session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "recipes://docs/usage"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "# recipebox usage")
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(context.Canceled))
	require.Equal(t, "NO_FORM", MapError(app.ErrNoForm).Code)
}
