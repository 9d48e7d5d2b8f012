package template

import (
	"testing"

	"bennypowers.dev/gqlls/internal/parser/js"
	"github.com/stretchr/testify/assert"
)

func TestIsTagged(t *testing.T) {
	gqlNode := &js.TemplateNode{Start: 0, End: 10, Tag: "gql"}
	sqlNode := &js.TemplateNode{Start: 0, End: 10, Tag: "sql"}
	untagged := &js.TemplateNode{Start: 0, End: 10}
	qualified := &js.TemplateNode{Start: 0, End: 10, Tag: "graphql.experimental"}

	tests := []struct {
		name      string
		node      *js.TemplateNode
		condition TagCondition
		expect    bool
	}{
		{"exact name match", gqlNode, TagCondition{Name: "gql"}, true},
		{"exact name mismatch", sqlNode, TagCondition{Name: "gql"}, false},
		{"set membership", gqlNode, TagCondition{Names: []string{"graphql", "gql"}}, true},
		{"set miss", sqlNode, TagCondition{Names: []string{"graphql", "gql"}}, false},
		{"qualified name match", qualified, TagCondition{Name: "graphql.experimental"}, true},
		{"untagged under condition", untagged, TagCondition{Name: "gql"}, false},
		{"untagged without condition", untagged, TagCondition{}, true},
		{"tagged without condition", sqlNode, TagCondition{}, true},
		{"nil node", nil, TagCondition{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, IsTagged(tt.node, tt.condition))
		})
	}
}
