// Package testserver runs the full recipebox stack behind an httptest server
// for end-to-end tests.
package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/recipebox/internal/app"
	"github.com/rpggio/recipebox/internal/domain/identity"
	"github.com/rpggio/recipebox/internal/domain/recipe"
	"github.com/rpggio/recipebox/internal/mcp"
	"github.com/rpggio/recipebox/internal/sqlite"
	"github.com/rpggio/recipebox/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server     *httptest.Server
	DB         *sqlite.DB
	Controller *app.Controller
	Token      string
	UID        string
}

// New starts a server whose controller signs in with a freshly issued token.
// The same token authorizes HTTP requests to /mcp.
func New(t *testing.T) *TestServer {
	t.Helper()

	db, err := sqlite.New(filepath.Join(t.TempDir(), "recipes.db"))
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	identities := sqlite.NewIdentities(db)
	token, uid, err := identities.IssueToken(context.Background(), "", "test")
	require.NoError(t, err)

	authSvc := identity.NewService(identities, token, nil)
	ctrl := app.NewController(authSvc, recipe.NewService(sqlite.NewCollection(db, nil), nil), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ctrl.Run(ctx)
	}()

	mcpServer := mcp.NewServer(mcp.Config{Controller: ctrl})
	router := transport.NewRouter(transport.Options{
		MCP: sdkmcp.NewStreamableHTTPHandler(
			func(r *http.Request) *sdkmcp.Server { return mcpServer },
			nil,
		),
		Status: authSvc.Status,
		Auth:   transport.AuthMiddleware(identities),
	})
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		cancel()
		<-done
		_ = db.Close()
	})

	require.Eventually(t, func() bool {
		s := ctrl.State()
		return s.Auth == identity.StatusAuthenticated && !s.Loading
	}, 2*time.Second, 10*time.Millisecond)

	return &TestServer{
		Server:     server,
		DB:         db,
		Controller: ctrl,
		Token:      token,
		UID:        uid,
	}
}

// Connect opens an MCP client session over streamable HTTP using token as
// the bearer credential.
func (ts *TestServer) Connect(t *testing.T, token string) (*sdkmcp.ClientSession, error) {
	t.Helper()

	httpClient := &http.Client{Transport: &bearerTransport{token: token, base: http.DefaultTransport}}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: httpClient,
	}, nil)
	if err != nil {
		return nil, err
	}
	t.Cleanup(func() { _ = session.Close() })
	return session, nil
}

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return b.base.RoundTrip(req)
}
