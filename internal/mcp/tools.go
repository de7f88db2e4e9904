package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/recipebox/internal/domain/navigation"
	"github.com/rpggio/recipebox/internal/view"
)

func registerTools(server *sdkmcp.Server, ctrl Controller) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "view",
		Description: "Show the current screen without changing anything",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, ScreenResult, error) {
		return render(ctrl)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "navigate",
		Description: "Open a location path. Unknown paths show the not-found page",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in NavigateInput) (*sdkmcp.CallToolResult, ScreenResult, error) {
		return run(ctrl, ctrl.NavigatePath(ctx, in.Path))
	})

	addIntentTool(server, ctrl, "go_home", "Go to the recipe list", navigation.Home)
	addIntentTool(server, ctrl, "go_create", "Open the new recipe form", navigation.Create)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "go_detail",
		Description: "Open the detail screen of a recipe",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecipeIDInput) (*sdkmcp.CallToolResult, ScreenResult, error) {
		return run(ctrl, ctrl.Navigate(ctx, navigation.Detail(in.ID)))
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "go_edit",
		Description: "Open the edit form of a recipe. A missing recipe returns to the list",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecipeIDInput) (*sdkmcp.CallToolResult, ScreenResult, error) {
		return run(ctrl, ctrl.Navigate(ctx, navigation.Edit(in.ID)))
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_field",
		Description: "Change one field of the open form",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetFieldInput) (*sdkmcp.CallToolResult, ScreenResult, error) {
		return run(ctrl, ctrl.SetField(ctx, in.Field, in.Value))
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "submit",
		Description: "Validate and save the open form. Field errors are shown on the form; a saved recipe returns to the list once stored",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, ScreenResult, error) {
		return run(ctrl, ctrl.Submit(ctx))
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "cancel",
		Description: "Leave the open form without saving",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, ScreenResult, error) {
		return run(ctrl, ctrl.Cancel(ctx))
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_recipe",
		Description: "Delete a recipe. Viewing its detail screen returns to the list once deleted",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecipeIDInput) (*sdkmcp.CallToolResult, ScreenResult, error) {
		return run(ctrl, ctrl.Delete(ctx, in.ID))
	})
}

func addIntentTool(server *sdkmcp.Server, ctrl Controller, name, description string, intent func() navigation.Intent) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, ScreenResult, error) {
		return run(ctrl, ctrl.Navigate(ctx, intent()))
	})
}

func run(ctrl Controller, err error) (*sdkmcp.CallToolResult, ScreenResult, error) {
	if err != nil {
		return nil, ScreenResult{}, toolError(err)
	}
	return render(ctrl)
}

func render(ctrl Controller) (*sdkmcp.CallToolResult, ScreenResult, error) {
	state := ctrl.State()
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: view.Render(state)}},
	}, screenResult(state), nil
}
