package testserver_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/recipebox/internal/mcp"
	"github.com/rpggio/recipebox/internal/testserver"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) mcp.ScreenResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	result, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var screen mcp.ScreenResult
	data, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &screen))
	return screen
}

func TestHTTP_RecipeLifecycle(t *testing.T) {
	ts := testserver.New(t)
	session, err := ts.Connect(t, ts.Token)
	require.NoError(t, err)

	screen := callTool(t, session, "view", nil)
	require.Equal(t, "list", screen.Screen)
	require.Equal(t, ts.UID, screen.UserID)

	callTool(t, session, "go_create", nil)
	for field, value := range map[string]string{
		"name":         "Pancakes",
		"ingredients":  "flour, milk, eggs",
		"instructions": "Whisk and fry.",
	} {
		callTool(t, session, "set_field", map[string]any{"field": field, "value": value})
	}
	callTool(t, session, "submit", nil)

	require.Eventually(t, func() bool {
		s := ts.Controller.State()
		return s.Nav.Screen == "list" && len(s.Recipes) == 1
	}, 2*time.Second, 10*time.Millisecond)

	id := ts.Controller.State().Recipes[0].ID
	screen = callTool(t, session, "go_edit", map[string]any{"id": id})
	require.Equal(t, "edit", screen.Screen)

	callTool(t, session, "set_field", map[string]any{"field": "rating", "value": "5"})
	callTool(t, session, "submit", nil)

	require.Eventually(t, func() bool {
		s := ts.Controller.State()
		return s.Nav.Screen == "list" && len(s.Recipes) == 1 && s.Recipes[0].Rating == 5
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHTTP_RejectsBadToken(t *testing.T) {
	ts := testserver.New(t)

	_, err := ts.Connect(t, "wrong")
	require.Error(t, err)
}

func TestHTTP_Health(t *testing.T) {
	ts := testserver.New(t)

	resp, err := http.Get(ts.Server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", string(body))
}
