// Package expand turns a for_each collection and a block body template into
// an ordered sequence of concrete blocks, one per collection item. This is
// the dynamic-block pattern: a pure mapping from a collection to records,
// with each iteration evaluated in its own immutable child scope binding
// `key` and `value`.
package expand

import (
	"github.com/vk/expandgo/internal/eval"
	"github.com/vk/expandgo/internal/expr"
	"github.com/vk/expandgo/internal/value"
)

// Attribute is one named entry of a block body template, in source order.
type Attribute struct {
	Name  string
	Value expr.Expr
}

// ForEachExpand describes one expansion: the collection to iterate and the
// body template to instantiate per item.
type ForEachExpand struct {
	Collection expr.Expr
	Body       []Attribute
}

// BlockAttr is one evaluated attribute of an expanded block.
type BlockAttr struct {
	Name string
	Val  value.Value
}

// ExpandedBlock is one concrete block produced by an expansion. Key is the
// collection key the block was generated for: the Number index for lists,
// the String key for maps. Attrs preserve the template's source order.
type ExpandedBlock struct {
	Key   value.Value
	Attrs []BlockAttr
}

// Attr returns the named attribute's value, with a presence flag.
func (b ExpandedBlock) Attr(name string) (value.Value, bool) {
	for _, a := range b.Attrs {
		if a.Name == name {
			return a.Val, true
		}
	}
	return value.Value{}, false
}

// Expand evaluates the collection and instantiates the body once per item.
// Lists iterate by ascending index; maps iterate in lexicographic key order.
// An empty collection yields an empty sequence, not an error. Any failure
// aborts the whole expansion with no partial block list.
func Expand(fe ForEachExpand, env *eval.Environment) ([]ExpandedBlock, error) {
	coll, err := eval.Evaluate(fe.Collection, env)
	if err != nil {
		return nil, err
	}

	var items []collectionItem
	switch coll.Kind() {
	case value.KindList:
		elems, err := coll.AsList()
		if err != nil {
			return nil, err
		}
		for i, elem := range elems {
			items = append(items, collectionItem{
				key: value.NumberIntVal(int64(i)),
				val: elem,
			})
		}

	case value.KindMap:
		entries, err := coll.AsMap()
		if err != nil {
			return nil, err
		}
		keys, err := coll.MapKeys()
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			items = append(items, collectionItem{
				key: value.StringVal(k),
				val: entries[k],
			})
		}

	default:
		return nil, &value.TypeMismatchError{
			Subject: "for_each of " + fe.Collection.String(),
			Wanted:  "list or map",
			Got:     coll.Kind(),
		}
	}

	blocks := make([]ExpandedBlock, 0, len(items))
	for _, item := range items {
		scope := env.Child(map[string]value.Value{
			"key":   item.key,
			"value": item.val,
		})
		block := ExpandedBlock{
			Key:   item.key,
			Attrs: make([]BlockAttr, 0, len(fe.Body)),
		}
		for _, attr := range fe.Body {
			v, err := eval.Evaluate(attr.Value, scope)
			if err != nil {
				return nil, err
			}
			block.Attrs = append(block.Attrs, BlockAttr{Name: attr.Name, Val: v})
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// collectionItem pairs an iteration key with its value.
type collectionItem struct {
	key value.Value
	val value.Value
}
