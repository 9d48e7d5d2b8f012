package types

// ServerConfig represents the server configuration
type ServerConfig struct {
	// Schema is the path to the SDL schema file, absolute or relative to
	// the workspace root. Empty means auto-discover from the workspace.
	Schema string `json:"schema"`

	// Tags restricts GraphQL analysis to template literals whose tag
	// matches one of these names exactly (including qualified tags like
	// "graphql.experimental"). Empty means analyze every template literal.
	Tags []string `json:"tags"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() ServerConfig {
	return ServerConfig{
		Tags: []string{"gql", "graphql"},
	}
}

// ServerState is a snapshot of runtime state (NOT configuration).
// Kept separate from ServerConfig so handlers can't confuse what the user
// asked for with what the server worked out at runtime.
type ServerState struct {
	RootPath string
}
