package schema

import (
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoverPatterns are the glob patterns used to find a schema SDL file in
// the workspace when none is configured, tried in order.
var DiscoverPatterns = []string{
	"**/schema.graphql",
	"**/schema.graphqls",
	"**/*.graphqls",
}

// Discover searches the workspace root for a schema SDL file. Returns the
// path relative to root of the first match, or "" when nothing matched.
// Vendored dependency trees are skipped.
func Discover(rootPath string) string {
	if rootPath == "" {
		return ""
	}
	fsys := os.DirFS(rootPath)

	for _, pattern := range DiscoverPatterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			continue
		}
		sort.Strings(matches)
		for _, match := range matches {
			if strings.Contains(match, "node_modules/") {
				continue
			}
			return match
		}
	}
	return ""
}
