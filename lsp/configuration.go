package lsp

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bennypowers.dev/gqlls/internal/log"
	"bennypowers.dev/gqlls/internal/schema"
	"bennypowers.dev/gqlls/lsp/types"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Workspace configuration file names, tried in order. These follow the
// graphql-config convention so existing editor setups work unchanged.
var configFileNames = []string{
	"graphql.config.json",
	".graphqlrc.json",
	".graphqlrc.yml",
	".graphqlrc.yaml",
}

// workspaceFileConfig is the subset of a graphql-config file this server
// reads. Schema may be a single path or a list of paths, of which only the
// first is used.
type workspaceFileConfig struct {
	Schema any      `json:"schema" yaml:"schema"`
	Tags   []string `json:"tags" yaml:"tags"`
}

// GetConfig returns the current server configuration (user settings only)
func (s *Server) GetConfig() types.ServerConfig {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.config
}

// SetConfig updates the server configuration
func (s *Server) SetConfig(config types.ServerConfig) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.config = config
}

// GetState returns a snapshot of runtime state (NOT configuration).
// For configuration, use GetConfig() separately.
func (s *Server) GetState() types.ServerState {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return types.ServerState{
		RootPath: s.rootPath,
	}
}

// LoadWorkspaceConfig reads configuration from a graphql-config file in the
// workspace root. Client-sent configuration takes precedence over the file.
func (s *Server) LoadWorkspaceConfig() error {
	state := s.GetState()
	if state.RootPath == "" {
		return nil // No workspace, nothing to load
	}

	fileConfig, name, err := readWorkspaceConfigFile(state.RootPath)
	if err != nil {
		return err
	}
	if fileConfig == nil {
		return nil // No config file, not an error
	}

	s.configMu.Lock()
	defer s.configMu.Unlock()

	defaults := types.DefaultConfig()

	if s.config.Schema == "" {
		if path := schemaPathFromValue(fileConfig.Schema); path != "" {
			s.config.Schema = path
			log.Info("Loaded schema path from %s: %s", name, path)
		}
	}

	// Allow the file to override tags only while they're still at defaults
	if isTagsDefault(s.config.Tags, defaults.Tags) && len(fileConfig.Tags) > 0 {
		s.config.Tags = fileConfig.Tags
		log.Info("Loaded tags from %s: %v", name, fileConfig.Tags)
	}

	return nil
}

// readWorkspaceConfigFile finds and parses the first configuration file
// present in the root. Returns (nil, "", nil) when no file exists.
func readWorkspaceConfigFile(rootPath string) (*workspaceFileConfig, string, error) {
	for _, name := range configFileNames {
		path := filepath.Join(rootPath, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, "", fmt.Errorf("failed to read %s: %w", name, err)
		}

		var fileConfig workspaceFileConfig
		switch filepath.Ext(name) {
		case ".yml", ".yaml":
			if err := yaml.Unmarshal(data, &fileConfig); err != nil {
				return nil, "", fmt.Errorf("failed to parse %s: %w", name, err)
			}
		default:
			// graphql.config.json in the wild frequently carries comments
			// and trailing commas, so run it through the JSONC translator.
			if err := json.Unmarshal(jsonc.ToJSON(data), &fileConfig); err != nil {
				return nil, "", fmt.Errorf("failed to parse %s: %w", name, err)
			}
		}

		return &fileConfig, name, nil
	}

	return nil, "", nil
}

// schemaPathFromValue accepts the schema field's two graphql-config shapes:
// a path string, or a list of path strings (first entry wins).
func schemaPathFromValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		for _, item := range v {
			if path, ok := item.(string); ok && path != "" {
				return path
			}
		}
	}
	return ""
}

// isTagsDefault checks if the tag list equals the default values
func isTagsDefault(current, defaults []string) bool {
	if len(current) != len(defaults) {
		return false
	}
	for i := range current {
		if current[i] != defaults[i] {
			return false
		}
	}
	return true
}

// LoadSchemaFromConfig loads the schema named by the configuration, falling
// back to workspace auto-discovery when no path is configured.
func (s *Server) LoadSchemaFromConfig() error {
	cfg := s.GetConfig()
	state := s.GetState()

	path := cfg.Schema
	if path != "" {
		if !filepath.IsAbs(path) && state.RootPath != "" {
			path = filepath.Join(state.RootPath, path)
		}
	} else {
		discovered := schema.Discover(state.RootPath)
		if discovered == "" {
			log.Info("No schema configured or discovered; GraphQL analysis is inactive")
			return nil
		}
		path = filepath.Join(state.RootPath, discovered)
		log.Info("Discovered schema: %s", path)
	}

	return s.schemas.LoadFile(path)
}
