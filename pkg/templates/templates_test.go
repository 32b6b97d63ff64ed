package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatforge/flowbuilder/pkg/catalog"
	"github.com/chatforge/flowbuilder/pkg/models"
)

func TestAll_ReturnsClones(t *testing.T) {
	first := All()
	require.NotEmpty(t, first)

	first[0].Name = "mutated"
	first[0].Nodes[0].Data.Config["option"] = "mutated"

	second := All()
	assert.NotEqual(t, "mutated", second[0].Name)
	assert.NotEqual(t, "mutated", second[0].Nodes[0].Data.Config["option"])
}

func TestByID(t *testing.T) {
	tpl, err := ByID("tpl-welcome-sequence")
	require.NoError(t, err)
	assert.Equal(t, "Welcome Sequence", tpl.Name)
	assert.True(t, tpl.IsPrebuilt)

	_, err = ByID("tpl-nope")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestInstantiate_FreshIDStructurallyIdentical(t *testing.T) {
	tpl, err := ByID("tpl-auto-response")
	require.NoError(t, err)

	a := Instantiate(tpl)
	b := Instantiate(tpl)

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, tpl.ID, a.ID)
	assert.False(t, a.IsPrebuilt)

	require.Len(t, a.Nodes, len(b.Nodes))
	require.Len(t, a.Connections, len(b.Connections))

	for i := range a.Nodes {
		assert.Equal(t, a.Nodes[i].ID, b.Nodes[i].ID)
		assert.Equal(t, a.Nodes[i].Type, b.Nodes[i].Type)
		assert.Equal(t, a.Nodes[i].Data.Config, b.Nodes[i].Data.Config)
	}

	for i := range a.Connections {
		assert.Equal(t, *a.Connections[i], *b.Connections[i])
	}
}

func TestBuiltin_GraphsAreWellFormed(t *testing.T) {
	for _, tpl := range All() {
		require.NotEmpty(t, tpl.Nodes, "template %s has no nodes", tpl.ID)

		start := tpl.StartNode()
		require.NotNil(t, start, "template %s start node missing", tpl.ID)
		assert.True(t, start.IsTrigger(), "template %s start node is not a trigger", tpl.ID)

		for _, conn := range tpl.Connections {
			assert.True(t, tpl.HasNode(conn.Source), "template %s connection %s has dangling source", tpl.ID, conn.ID)
			assert.True(t, tpl.HasNode(conn.Target), "template %s connection %s has dangling target", tpl.ID, conn.ID)
		}

		// Every configured node's config must satisfy its catalog option.
		for _, node := range tpl.Nodes {
			option, ok := node.Data.Config["option"].(string)
			require.True(t, ok, "template %s node %s missing option", tpl.ID, node.ID)

			err := catalog.ValidateConfig(node.Type, option, configWithoutOption(node.Data.Config))
			assert.NoError(t, err, "template %s node %s config invalid", tpl.ID, node.ID)
		}
	}
}

func configWithoutOption(config map[string]any) map[string]any {
	out := make(map[string]any, len(config))
	for k, v := range config {
		if k == "option" {
			continue
		}

		out[k] = v
	}

	return out
}

func TestInstantiate_PreservesNodeTypes(t *testing.T) {
	tpl, err := ByID("tpl-escalation-flow")
	require.NoError(t, err)

	wf := Instantiate(tpl)

	types := map[models.NodeType]int{}
	for _, node := range wf.Nodes {
		types[node.Type]++
	}

	assert.Equal(t, 1, types[models.NodeTypeTrigger])
	assert.Equal(t, 1, types[models.NodeTypeCondition])
	assert.Equal(t, 2, types[models.NodeTypeAction])
	assert.Equal(t, 1, types[models.NodeTypeDelay])
}
