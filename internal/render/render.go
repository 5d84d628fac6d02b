// Package render serializes evaluation results. The HCL form is meant for
// pasting back into host configuration: expanded blocks come out as plain
// repeated blocks with attributes in template order. The JSON form is for
// programmatic consumers.
package render

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/vk/expandgo/internal/expand"
	"github.com/vk/expandgo/internal/value"
)

// Output is one evaluated output expression.
type Output struct {
	Name  string
	Value value.Value
}

// BlockSet is the result of expanding one dynamic block declaration.
type BlockSet struct {
	Type   string
	Name   string
	Blocks []expand.ExpandedBlock
}

// Document collects everything one run produced, in document order.
type Document struct {
	Outputs   []Output
	BlockSets []BlockSet
}

// HCL renders the document as HCL source text.
func HCL(doc *Document) string {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for _, out := range doc.Outputs {
		body.SetAttributeValue(out.Name, out.Value.Cty())
	}

	for _, set := range doc.BlockSets {
		for _, blk := range set.Blocks {
			body.AppendNewline()
			hclBlock := body.AppendNewBlock(set.Type, nil)
			for _, attr := range blk.Attrs {
				hclBlock.Body().SetAttributeValue(attr.Name, attr.Val.Cty())
			}
		}
	}

	return string(f.Bytes())
}

// JSON renders the document as a JSON object with "outputs" and "blocks"
// members. Block sets are keyed "type.name" and serialize as arrays in
// expansion order.
func JSON(doc *Document) ([]byte, error) {
	outputs := make(map[string]cty.Value, len(doc.Outputs))
	for _, out := range doc.Outputs {
		outputs[out.Name] = out.Value.Cty()
	}

	blockSets := make(map[string]cty.Value, len(doc.BlockSets))
	for _, set := range doc.BlockSets {
		blocks := make([]cty.Value, len(set.Blocks))
		for i, blk := range set.Blocks {
			attrs := make(map[string]cty.Value, len(blk.Attrs))
			for _, attr := range blk.Attrs {
				attrs[attr.Name] = attr.Val.Cty()
			}
			blocks[i] = objectVal(attrs)
		}
		blockSets[set.Type+"."+set.Name] = tupleVal(blocks)
	}

	root := cty.ObjectVal(map[string]cty.Value{
		"outputs": objectVal(outputs),
		"blocks":  objectVal(blockSets),
	})
	return ctyjson.Marshal(root, root.Type())
}

func objectVal(attrs map[string]cty.Value) cty.Value {
	if len(attrs) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(attrs)
}

func tupleVal(elems []cty.Value) cty.Value {
	if len(elems) == 0 {
		return cty.EmptyTupleVal
	}
	return cty.TupleVal(elems)
}
