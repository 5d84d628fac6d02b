package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/expandgo/internal/eval"
	"github.com/vk/expandgo/internal/expr"
	"github.com/vk/expandgo/internal/value"
)

func lit(v value.Value) expr.Expr {
	return &expr.Literal{Val: v}
}

func ingressRule(from, to int64, cidr string) value.Value {
	return value.MapVal(map[string]value.Value{
		"from_port":  value.NumberIntVal(from),
		"to_port":    value.NumberIntVal(to),
		"cidr_block": value.StringVal(cidr),
	})
}

// ingressBody mirrors the classic security-group content template:
// each attribute reads from the per-iteration `value` binding.
func ingressBody() []Attribute {
	return []Attribute{
		{Name: "from_port", Value: &expr.GetAttr{Source: &expr.VarRef{Name: "value"}, Name: "from_port"}},
		{Name: "to_port", Value: &expr.GetAttr{Source: &expr.VarRef{Name: "value"}, Name: "to_port"}},
		{Name: "cidr_block", Value: &expr.GetAttr{Source: &expr.VarRef{Name: "value"}, Name: "cidr_block"}},
		{Name: "protocol", Value: lit(value.StringVal("tcp"))},
	}
}

func TestExpand_IngressRulesInOrder(t *testing.T) {
	t.Parallel()

	env := eval.NewEnvironment(map[string]value.Value{
		"ingress_rules": value.ListVal([]value.Value{
			ingressRule(22, 22, "10.0.0.0/16"),
			ingressRule(80, 80, "0.0.0.0/0"),
		}),
	})

	blocks, err := Expand(ForEachExpand{
		Collection: &expr.VarRef{Name: "ingress_rules"},
		Body:       ingressBody(),
	}, env)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	wantPorts := []float64{22, 80}
	for i, blk := range blocks {
		from, ok := blk.Attr("from_port")
		require.True(t, ok)
		n, err := from.AsNumber()
		require.NoError(t, err)
		assert.Equal(t, wantPorts[i], n, "blocks must appear in iteration order, each with its own from_port")

		proto, ok := blk.Attr("protocol")
		require.True(t, ok)
		s, err := proto.AsString()
		require.NoError(t, err)
		assert.Equal(t, "tcp", s)
	}

	// Attribute order follows the template, not some map ordering.
	names := make([]string, len(blocks[0].Attrs))
	for i, a := range blocks[0].Attrs {
		names[i] = a.Name
	}
	assert.Equal(t, []string{"from_port", "to_port", "cidr_block", "protocol"}, names)
}

func TestExpand_ListBindsIndexAsKey(t *testing.T) {
	t.Parallel()

	env := eval.NewEnvironment(map[string]value.Value{
		"ports": value.ListVal([]value.Value{
			value.NumberIntVal(22),
			value.NumberIntVal(80),
			value.NumberIntVal(443),
		}),
	})

	blocks, err := Expand(ForEachExpand{
		Collection: &expr.VarRef{Name: "ports"},
		Body: []Attribute{
			{Name: "index", Value: &expr.VarRef{Name: "key"}},
			{Name: "port", Value: &expr.VarRef{Name: "value"}},
		},
	}, env)
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	for i, blk := range blocks {
		k, err := blk.Key.AsNumber()
		require.NoError(t, err)
		assert.Equal(t, float64(i), k)

		idx, ok := blk.Attr("index")
		require.True(t, ok)
		n, err := idx.AsNumber()
		require.NoError(t, err)
		assert.Equal(t, float64(i), n)
	}
}

func TestExpand_MapIteratesLexicographically(t *testing.T) {
	t.Parallel()

	env := eval.NewEnvironment(map[string]value.Value{
		"service_ports": value.MapVal(map[string]value.Value{
			"ssh":   value.NumberIntVal(22),
			"http":  value.NumberIntVal(80),
			"https": value.NumberIntVal(443),
		}),
	})

	blocks, err := Expand(ForEachExpand{
		Collection: &expr.VarRef{Name: "service_ports"},
		Body: []Attribute{
			{Name: "description", Value: &expr.VarRef{Name: "key"}},
			{Name: "port", Value: &expr.VarRef{Name: "value"}},
		},
	}, env)
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	gotKeys := make([]string, len(blocks))
	for i, blk := range blocks {
		s, err := blk.Key.AsString()
		require.NoError(t, err)
		gotKeys[i] = s
	}
	assert.Equal(t, []string{"http", "https", "ssh"}, gotKeys)
}

func TestExpand_EmptyCollections(t *testing.T) {
	t.Parallel()

	env := eval.NewEnvironment(map[string]value.Value{
		"none_list": value.ListVal(nil),
		"none_map":  value.MapVal(nil),
	})

	blocks, err := Expand(ForEachExpand{
		Collection: &expr.VarRef{Name: "none_list"},
		Body:       ingressBody(),
	}, env)
	require.NoError(t, err, "an empty collection is not an error")
	assert.Empty(t, blocks)

	blocks, err = Expand(ForEachExpand{
		Collection: &expr.VarRef{Name: "none_map"},
		Body:       ingressBody(),
	}, env)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestExpand_ScalarCollectionFails(t *testing.T) {
	t.Parallel()

	env := eval.NewEnvironment(map[string]value.Value{
		"oops": value.StringVal("not-a-collection"),
	})

	_, err := Expand(ForEachExpand{
		Collection: &expr.VarRef{Name: "oops"},
		Body:       ingressBody(),
	}, env)

	var mismatch *value.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "list or map", mismatch.Wanted)
}

func TestExpand_BodyFailureAbortsWholeExpansion(t *testing.T) {
	t.Parallel()

	// The second rule lacks cidr_block, so the template fails mid-way; no
	// partial block list may be returned.
	env := eval.NewEnvironment(map[string]value.Value{
		"ingress_rules": value.ListVal([]value.Value{
			ingressRule(22, 22, "10.0.0.0/16"),
			value.MapVal(map[string]value.Value{
				"from_port": value.NumberIntVal(80),
				"to_port":   value.NumberIntVal(80),
			}),
		}),
	})

	blocks, err := Expand(ForEachExpand{
		Collection: &expr.VarRef{Name: "ingress_rules"},
		Body:       ingressBody(),
	}, env)

	var unsupported *eval.UnsupportedAttributeError
	require.ErrorAs(t, err, &unsupported)
	assert.Nil(t, blocks)
}

func TestExpand_IterationScopeDoesNotLeak(t *testing.T) {
	t.Parallel()

	env := eval.NewEnvironment(map[string]value.Value{
		"ports": value.ListVal([]value.Value{value.NumberIntVal(22)}),
	})

	_, err := Expand(ForEachExpand{
		Collection: &expr.VarRef{Name: "ports"},
		Body: []Attribute{
			{Name: "port", Value: &expr.VarRef{Name: "value"}},
		},
	}, env)
	require.NoError(t, err)

	// `key` and `value` were bound only inside the per-iteration scope.
	_, ok := env.Lookup("key")
	assert.False(t, ok)
	_, ok = env.Lookup("value")
	assert.False(t, ok)
}
