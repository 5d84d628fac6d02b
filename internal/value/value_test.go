package value

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestKinds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		val  Value
		want Kind
	}{
		{"string", StringVal("hello"), KindString},
		{"number", NumberVal(1.5), KindNumber},
		{"int number", NumberIntVal(42), KindNumber},
		{"bool", BoolVal(true), KindBool},
		{"list", ListVal([]Value{NumberIntVal(1)}), KindList},
		{"empty list", ListVal(nil), KindList},
		{"map", MapVal(map[string]Value{"a": StringVal("x")}), KindMap},
		{"empty map", MapVal(nil), KindMap},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.val.Kind())
		})
	}
}

func TestAccessors_Strict(t *testing.T) {
	t.Parallel()

	s, err := StringVal("web").AsString()
	require.NoError(t, err)
	assert.Equal(t, "web", s)

	n, err := NumberIntVal(22).AsNumber()
	require.NoError(t, err)
	assert.Equal(t, float64(22), n)

	b, err := BoolVal(true).AsBool()
	require.NoError(t, err)
	assert.True(t, b)

	// Accessing the wrong variant is an error, never a coercion.
	_, err = StringVal("true").AsBool()
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, KindString, mismatch.Got)

	_, err = NumberIntVal(1).AsList()
	require.ErrorAs(t, err, &mismatch)

	_, _, err = ListVal(nil).Attr("from_port")
	require.ErrorAs(t, err, &mismatch)
}

func TestAsList_PreservesOrder(t *testing.T) {
	t.Parallel()

	v := ListVal([]Value{NumberIntVal(22), NumberIntVal(80), NumberIntVal(443)})
	elems, err := v.AsList()
	require.NoError(t, err)
	require.Len(t, elems, 3)

	got := make([]float64, len(elems))
	for i, e := range elems {
		n, err := e.AsNumber()
		require.NoError(t, err)
		got[i] = n
	}
	assert.Equal(t, []float64{22, 80, 443}, got)
}

func TestMapKeys_Lexicographic(t *testing.T) {
	t.Parallel()

	v := MapVal(map[string]Value{
		"ssh":   NumberIntVal(22),
		"http":  NumberIntVal(80),
		"https": NumberIntVal(443),
	})
	keys, err := v.MapKeys()
	require.NoError(t, err)
	assert.Equal(t, []string{"http", "https", "ssh"}, keys)
}

func TestInterpolationString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		val     Value
		want    string
		wantErr bool
	}{
		{"string passes through", StringVal("prod"), "prod", false},
		{"number coerces", NumberIntVal(8080), "8080", false},
		{"bool coerces", BoolVal(false), "false", false},
		{"list fails", ListVal(nil), "", true},
		{"map fails", MapVal(nil), "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.val.InterpolationString()
			if tc.wantErr {
				var mismatch *TypeMismatchError
				require.ErrorAs(t, err, &mismatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, StringVal("prod").Equal(StringVal("prod")))
	assert.False(t, StringVal("prod").Equal(StringVal("dev")))
	assert.True(t, NumberVal(1).Equal(NumberIntVal(1)))

	// Cross-kind comparison is false, not an error.
	assert.False(t, StringVal("1").Equal(NumberIntVal(1)))
	assert.False(t, BoolVal(true).Equal(StringVal("true")))

	assert.True(t, ListVal([]Value{NumberIntVal(1)}).Equal(ListVal([]Value{NumberIntVal(1)})))
	assert.False(t, ListVal([]Value{NumberIntVal(1)}).Equal(ListVal(nil)))
}

func TestFromCty(t *testing.T) {
	t.Parallel()

	v, err := FromCty(cty.StringVal("tcp"))
	require.NoError(t, err)
	assert.Equal(t, KindString, v.Kind())

	v, err = FromCty(cty.ListVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}))
	require.NoError(t, err)
	assert.Equal(t, KindList, v.Kind())

	v, err = FromCty(cty.MapVal(map[string]cty.Value{"a": cty.NumberIntVal(1)}))
	require.NoError(t, err)
	assert.Equal(t, KindMap, v.Kind())

	_, err = FromCty(cty.NullVal(cty.String))
	require.Error(t, err)

	_, err = FromCty(cty.UnknownVal(cty.String))
	require.Error(t, err)

	var mismatch *TypeMismatchError
	_, err = FromCty(cty.SetVal([]cty.Value{cty.StringVal("a")}))
	require.Error(t, err)
	assert.False(t, errors.As(err, &mismatch), "unsupported types are plain errors, not mismatches")
}
