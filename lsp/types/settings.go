package types

import (
	"encoding/json"
	"fmt"
)

// ParseClientConfig merges client-provided settings into base. Settings may
// be the configuration object itself or nested under the server's section
// key, as editors send for workspace/didChangeConfiguration:
//
//	{ "graphqlLanguageServer": { "schema": "./schema.graphql" } }
//
// A nil settings value returns base unchanged.
func ParseClientConfig(base ServerConfig, settings any) (ServerConfig, error) {
	config := base

	if settings == nil {
		return config, nil
	}

	if settingsMap, ok := settings.(map[string]any); ok {
		if val, exists := settingsMap["graphqlLanguageServer"]; exists {
			settings = val
		} else if val, exists := settingsMap["graphql-language-server"]; exists {
			settings = val
		}
	}

	// Convert to JSON and back to parse into the struct
	jsonBytes, err := json.Marshal(settings)
	if err != nil {
		return config, fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, &config); err != nil {
		return config, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return config, nil
}
