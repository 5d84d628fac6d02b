package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/expandgo/internal/config"
	"github.com/vk/expandgo/internal/ctxlog"
	"github.com/vk/expandgo/internal/fsutil"
	"github.com/vk/expandgo/internal/schema"
)

// Loader reads .hcl configuration files and produces the format-agnostic
// config document.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the file or directory at path and translates everything found
// into a single merged document. Multiple files merge in sorted path order.
func (l *Loader) Load(ctx context.Context, path string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := l.findConfigFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found at %s", path)
	}
	logger.Debug("Discovered configuration files.", "count", len(files))

	parser := hclparse.NewParser()
	doc := &config.Document{}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}

		var root schema.Document
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", file, diags)
		}

		for _, v := range root.Variables {
			translated, err := l.translateVariable(v)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			doc.Variables = append(doc.Variables, translated)
		}
		for _, b := range root.Blocks {
			translated, err := l.translateDynamicBlock(b)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			doc.Blocks = append(doc.Blocks, translated)
		}
		for _, o := range root.Outputs {
			translated, err := l.translateOutput(o)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			doc.Outputs = append(doc.Outputs, translated)
		}
	}

	logger.Debug("HCL loading complete.",
		"variables", len(doc.Variables),
		"blocks", len(doc.Blocks),
		"outputs", len(doc.Outputs))
	return doc, nil
}

func (l *Loader) findConfigFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read configuration path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return fsutil.FindFilesByExtension(path, ".hcl")
}
