package lifecycle

import (
	"testing"

	"bennypowers.dev/gqlls/lsp/testutil"
	"bennypowers.dev/gqlls/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type initializeResult = struct {
	Capabilities any                                  `json:"capabilities"`
	ServerInfo   *protocol.InitializeResultServerInfo `json:"serverInfo,omitempty"`
}

func newRequest(ctx types.ServerContext) *types.RequestContext {
	return types.NewRequestContext(ctx, &glsp.Context{})
}

func TestInitialize(t *testing.T) {
	t.Run("sets root URI from params.RootURI", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		rootURI := "file:///workspace"

		result, err := Initialize(newRequest(ctx), &protocol.InitializeParams{
			RootURI: &rootURI,
		})
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, "file:///workspace", ctx.RootURI())
		assert.Equal(t, "/workspace", ctx.RootPath())
	})

	t.Run("sets root path from params.RootPath", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		rootPath := "/workspace"

		result, err := Initialize(newRequest(ctx), &protocol.InitializeParams{
			RootPath: &rootPath,
		})
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, "/workspace", ctx.RootPath())
		assert.Equal(t, "file:///workspace", ctx.RootURI())
	})

	t.Run("returns server capabilities", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()

		result, err := Initialize(newRequest(ctx), &protocol.InitializeParams{})
		require.NoError(t, err)

		initResult := result.(initializeResult)
		require.NotNil(t, initResult.ServerInfo)
		assert.Equal(t, "graphql-language-server", initResult.ServerInfo.Name)

		caps, ok := initResult.Capabilities.(map[string]any)
		require.True(t, ok, "Capabilities should be a map")
		assert.Contains(t, caps, "textDocumentSync")
		assert.Contains(t, caps, "hoverProvider")
		assert.Contains(t, caps, "completionProvider")
	})

	t.Run("advertises pull diagnostics only when client supports them", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		ctx.SetClientDiagnosticCapability(true)

		result, err := Initialize(newRequest(ctx), &protocol.InitializeParams{})
		require.NoError(t, err)

		caps := result.(initializeResult).Capabilities.(map[string]any)
		assert.Contains(t, caps, "diagnosticProvider")
		assert.True(t, ctx.UsePullDiagnostics())
	})

	t.Run("defaults to push diagnostics", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()

		result, err := Initialize(newRequest(ctx), &protocol.InitializeParams{})
		require.NoError(t, err)

		caps := result.(initializeResult).Capabilities.(map[string]any)
		assert.NotContains(t, caps, "diagnosticProvider")
		assert.False(t, ctx.UsePullDiagnostics())
	})

	t.Run("applies initializationOptions", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()

		_, err := Initialize(newRequest(ctx), &protocol.InitializeParams{
			InitializationOptions: map[string]any{
				"schema": "api/schema.graphql",
				"tags":   []any{"gql"},
			},
		})
		require.NoError(t, err)

		config := ctx.GetConfig()
		assert.Equal(t, "api/schema.graphql", config.Schema)
		assert.Equal(t, []string{"gql"}, config.Tags)
	})
}

func TestInitialized(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	glspCtx := &glsp.Context{}
	req := types.NewRequestContext(ctx, glspCtx)

	err := Initialized(req, &protocol.InitializedParams{})
	require.NoError(t, err)

	assert.Same(t, glspCtx, ctx.GLSPContext())
	assert.True(t, ctx.LoadSchemaCalled)
	assert.True(t, ctx.RegisterWatchersCalled)
}

func TestShutdown(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	assert.NoError(t, Shutdown(newRequest(ctx)))
}

func TestSetTrace(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	assert.NoError(t, SetTrace(newRequest(ctx), &protocol.SetTraceParams{
		Value: "verbose",
	}))
}
