package hcl

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vk/expandgo/internal/config"
	"github.com/vk/expandgo/internal/expand"
	"github.com/vk/expandgo/internal/hclexpr"
	"github.com/vk/expandgo/internal/schema"
)

// translateVariable converts the HCL-specific variable schema into the
// agnostic model. A variable with no default translates with a nil Default.
func (l *Loader) translateVariable(s *schema.Variable) (*config.Variable, error) {
	v := &config.Variable{Name: s.Name}
	if s.Default != nil {
		def, err := hclexpr.Translate(s.Default)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", s.Name, err)
		}
		v.Default = def
	}
	return v, nil
}

// translateDynamicBlock converts the HCL-specific dynamic block schema into
// the agnostic model, preserving the content body's source order.
func (l *Loader) translateDynamicBlock(s *schema.DynamicBlock) (*config.BlockTemplate, error) {
	b := &config.BlockTemplate{Type: s.Type, Name: s.Name}

	forEach, err := hclexpr.Translate(s.ForEach)
	if err != nil {
		return nil, fmt.Errorf("block %q %q: for_each: %w", s.Type, s.Name, err)
	}
	b.ForEach = forEach

	if s.Content == nil {
		return nil, fmt.Errorf("block %q %q: missing content block", s.Type, s.Name)
	}
	body, ok := s.Content.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("block %q %q: content is not native HCL syntax", s.Type, s.Name)
	}

	// hclsyntax stores attributes in a map; recover the authored order from
	// the source ranges so expanded blocks render attributes as written.
	names := make([]string, 0, len(body.Attributes))
	for name := range body.Attributes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return body.Attributes[names[i]].SrcRange.Start.Byte < body.Attributes[names[j]].SrcRange.Start.Byte
	})

	for _, name := range names {
		attr := body.Attributes[name]
		translated, err := hclexpr.Translate(attr.Expr)
		if err != nil {
			return nil, fmt.Errorf("block %q %q: attribute %q: %w", s.Type, s.Name, name, err)
		}
		b.Body = append(b.Body, expand.Attribute{Name: name, Value: translated})
	}
	return b, nil
}

// translateOutput converts the HCL-specific output schema into the agnostic model.
func (l *Loader) translateOutput(s *schema.Output) (*config.Output, error) {
	v, err := hclexpr.Translate(s.Value)
	if err != nil {
		return nil, fmt.Errorf("output %q: %w", s.Name, err)
	}
	return &config.Output{Name: s.Name, Value: v}, nil
}
