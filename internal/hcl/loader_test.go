package hcl

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/expandgo/internal/config"
	"github.com/vk/expandgo/internal/ctxlog"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestLoader_FullDocument(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"main.hcl": `
			variable "environment" {
				default = "dev"
			}

			variable "ingress_rules" {
				default = [
					{ from_port = 22, to_port = 22, cidr_block = "10.0.0.0/16" },
					{ from_port = 80, to_port = 80, cidr_block = "0.0.0.0/0" },
				]
			}

			block "ingress" "web_sg" {
				for_each = var.ingress_rules

				content {
					from_port  = value.from_port
					to_port    = value.to_port
					cidr_block = value.cidr_block
					protocol   = "tcp"
				}
			}

			output "instance_type" {
				value = var.environment == "prod" ? "t3.large" : "t2.micro"
			}
		`,
	})

	doc, err := NewLoader().Load(testContext(), dir)
	require.NoError(t, err)

	require.Len(t, doc.Variables, 2)
	assert.Equal(t, "environment", doc.Variables[0].Name)
	require.NotNil(t, doc.Variables[0].Default)

	require.Len(t, doc.Blocks, 1)
	blk := doc.Blocks[0]
	assert.Equal(t, "ingress", blk.Type)
	assert.Equal(t, "web_sg", blk.Name)
	require.NotNil(t, blk.ForEach)

	// Content attributes must keep their authored order.
	names := make([]string, len(blk.Body))
	for i, attr := range blk.Body {
		names[i] = attr.Name
	}
	assert.Equal(t, []string{"from_port", "to_port", "cidr_block", "protocol"}, names)

	require.Len(t, doc.Outputs, 1)
	assert.Equal(t, "instance_type", doc.Outputs[0].Name)
}

func TestLoader_VariableWithoutDefault(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"vars.hcl": `
			variable "subnet_id" {}
		`,
	})

	doc, err := NewLoader().Load(testContext(), dir)
	require.NoError(t, err)
	require.Len(t, doc.Variables, 1)
	assert.Nil(t, doc.Variables[0].Default)
}

func TestLoader_MergesFilesInSortedOrder(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"b_outputs.hcl": `
			output "later" { value = 2 }
		`,
		"a_outputs.hcl": `
			output "earlier" { value = 1 }
		`,
	})

	doc, err := NewLoader().Load(testContext(), dir)
	require.NoError(t, err)
	require.Len(t, doc.Outputs, 2)
	assert.Equal(t, "earlier", doc.Outputs[0].Name)
	assert.Equal(t, "later", doc.Outputs[1].Name)
}

func TestLoader_SingleFilePath(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"only.hcl": `
			output "answer" { value = 42 }
		`,
	})

	doc, err := NewLoader().Load(testContext(), filepath.Join(dir, "only.hcl"))
	require.NoError(t, err)
	require.Len(t, doc.Outputs, 1)
}

func TestLoader_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		files   map[string]string
		wantSub string
	}{
		{
			name: "invalid syntax",
			files: map[string]string{
				"broken.hcl": `output "x" {`,
			},
			wantSub: "failed to parse",
		},
		{
			name: "missing content block",
			files: map[string]string{
				"no_content.hcl": `
					block "ingress" "x" {
						for_each = []
					}
				`,
			},
			wantSub: "content",
		},
		{
			name: "unsupported expression",
			files: map[string]string{
				"func.hcl": `
					output "x" { value = upper("web") }
				`,
			},
			wantSub: "function call",
		},
		{
			name:    "empty directory",
			files:   map[string]string{},
			wantSub: "no .hcl files",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeFiles(t, tc.files)
			_, err := NewLoader().Load(testContext(), dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantSub)
		})
	}
}

var _ config.Loader = (*Loader)(nil)
