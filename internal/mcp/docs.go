package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/recipebox/internal/view"
)

const serverInstructions = `recipebox manages a shared collection of recipes through screens.

Screens: list (/), create (/create), detail (/recipe/{id}), edit (/edit/{id}) and a not-found page.
Every tool returns the rendered screen and its state.

Workflow:
1) Call view to see the list and the current user.
2) To add a recipe: go_create, set_field for name, ingredients, instructions and rating, then submit.
3) To change a recipe: go_edit(id), set_field, submit. cancel returns to its detail screen.
4) delete_recipe(id) removes a recipe.

Saving is confirmed by the store: the list updates and the screen returns to the list once the
change is stored. Call view again if pending_commands is above zero.

Docs:
- recipes://docs/usage
- recipes://view/current (the current screen)
`

const viewResourceURI = "recipes://view/current"

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "recipes://docs/usage",
		Name:        "docs_usage",
		Title:       "recipebox usage",
		Description: "Form fields, validation rules and navigation behavior.",
		Content: `# recipebox usage

## Form fields

- name: required
- ingredients: required, comma separated; blank entries are dropped when displayed
- instructions: required
- rating: whole number from 1 to 5; new recipes start at 3

Every field is checked on submit and all errors are reported together. Changing a field
clears its error.

## Navigation

- The not-found page only allows go_home.
- Editing a recipe that no longer exists returns to the list.
- A recipe detail whose recipe is missing shows "Recipe not found".
- After a save the screen returns to the list only if the form is still open.
- After a delete the screen returns to the list only if that recipe's detail is open.

## Errors

A failed save or delete keeps the form and shows the error above the screen. Sign-in or
connection failures replace every screen with an error; restart the server to retry.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}

func registerViewResource(server *sdkmcp.Server, ctrl Controller) {
	server.AddResource(&sdkmcp.Resource{
		URI:         viewResourceURI,
		Name:        "current_view",
		Title:       "Current screen",
		Description: "The rendered current screen.",
		MIMEType:    "text/plain",
	}, func(_ context.Context, _ *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		return &sdkmcp.ReadResourceResult{
			Contents: []*sdkmcp.ResourceContents{{
				URI:      viewResourceURI,
				MIMEType: "text/plain",
				Text:     view.Render(ctrl.State()),
			}},
		}, nil
	})
}
