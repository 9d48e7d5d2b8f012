package template

import "bennypowers.dev/gqlls/internal/parser/js"

// TagCondition selects which template literals are treated as GraphQL
// documents, by the name of their directly wrapping tag expression.
// Either Name (exact match) or Names (set membership) is used; a zero
// condition places every template in scope, tagged or not.
type TagCondition struct {
	Name  string
	Names []string
}

// IsEmpty reports whether no condition is configured.
func (c TagCondition) IsEmpty() bool {
	return c.Name == "" && len(c.Names) == 0
}

// IsTagged reports whether the node's tag satisfies the condition.
// A node with no tag wrapper is never tagged under a configured condition.
// Total: unrecognized shapes return false rather than erroring.
func IsTagged(node *js.TemplateNode, condition TagCondition) bool {
	if node == nil {
		return false
	}
	if condition.IsEmpty() {
		return true
	}
	if node.Tag == "" {
		return false
	}
	if condition.Name != "" {
		return node.Tag == condition.Name
	}
	for _, name := range condition.Names {
		if node.Tag == name {
			return true
		}
	}
	return false
}
