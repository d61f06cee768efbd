package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/pkg/config"
	"github.com/yaklabco/mdtree/pkg/mdast"
	"github.com/yaklabco/mdtree/pkg/parser"
	"github.com/yaklabco/mdtree/pkg/render"
)

// stdinName is the display name of standard input.
const stdinName = "<stdin>"

var errNoInput = errors.New("no input: pass a file, or pipe a document to standard input")

// readInput reads the document named by the first argument, or standard
// input when there is none or it is "-". An interactive terminal on
// standard input with no argument is an error rather than a silent wait.
func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) > 0 && args[0] != "-" {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return nil, "", fmt.Errorf("read input: %w", err)
		}
		return content, args[0], nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && len(args) == 0 && term.IsTerminal(int(f.Fd())) {
		return nil, "", errNoInput
	}

	content, err := io.ReadAll(in)
	if err != nil {
		return nil, "", fmt.Errorf("read standard input: %w", err)
	}
	return content, stdinName, nil
}

// parseInput reads and parses the document named by args with the
// configured backend.
func parseInput(cmd *cobra.Command, cfg *config.Config, args []string) (*mdast.Node, error) {
	content, name, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}

	p, err := parser.ForBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}

	ctx := logging.WithFields(cmd.Context(), logging.FieldPath, name)
	root, err := p.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return root, nil
}

// newRenderer builds the configured renderer.
//
//nolint:ireturn // renderers are only known by interface
func newRenderer(cfg *config.Config, compact bool) (render.Renderer, error) {
	format, err := render.ParseFormat(cfg.Renderer)
	if err != nil {
		return nil, err
	}
	return render.New(format, render.Options{
		Compact:          compact,
		IncludeCode:      cfg.Text.IncludeCode,
		IncludeAltText:   cfg.Text.IncludeAltText,
		StripPunctuation: cfg.Text.StripPunctuation,
	})
}

func countNodes(root *mdast.Node) int {
	count := 0
	for range root.All() {
		count++
	}
	return count
}
