package lsp

import (
	"testing"

	"bennypowers.dev/gqlls/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	s, err := NewServer()
	require.NoError(t, err)
	defer s.Close()

	assert.NotNil(t, s.DocumentManager())
	assert.NotNil(t, s.SchemaRegistry())
	assert.Equal(t, types.DefaultConfig(), s.GetConfig())
	assert.Nil(t, s.SchemaRegistry().Schema(), "no schema until one is loaded")
}

func TestServerRootTracking(t *testing.T) {
	s, err := NewServer()
	require.NoError(t, err)
	defer s.Close()

	s.SetRootURI("file:///workspace")
	s.SetRootPath("/workspace")

	assert.Equal(t, "file:///workspace", s.RootURI())
	assert.Equal(t, "/workspace", s.RootPath())
}

func TestServerDiagnosticsModel(t *testing.T) {
	s, err := NewServer()
	require.NoError(t, err)
	defer s.Close()

	assert.Nil(t, s.ClientDiagnosticCapability(), "undetected before initialize")
	assert.False(t, s.UsePullDiagnostics())

	s.SetClientDiagnosticCapability(true)
	require.NotNil(t, s.ClientDiagnosticCapability())
	assert.True(t, *s.ClientDiagnosticCapability())

	s.SetUsePullDiagnostics(true)
	assert.True(t, s.UsePullDiagnostics())
}

func TestServerTagCondition(t *testing.T) {
	s, err := NewServer()
	require.NoError(t, err)
	defer s.Close()

	condition := s.TagCondition()
	assert.Equal(t, []string{"gql", "graphql"}, condition.Names)

	s.SetConfig(types.ServerConfig{Tags: nil})
	assert.True(t, s.TagCondition().IsEmpty())
}

func TestPublishDiagnosticsWithoutContext(t *testing.T) {
	s, err := NewServer()
	require.NoError(t, err)
	defer s.Close()

	err = s.PublishDiagnostics(nil, "file:///test.ts")
	assert.Error(t, err, "no client context available")
}

func TestServerCloseIsIdempotent(t *testing.T) {
	s, err := NewServer()
	require.NoError(t, err)

	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}
