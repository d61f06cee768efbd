package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/logging"
)

func newRenderCommand(g *globalFlags) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Parse a document and render it",
		Long: `Parse a document with the configured backend and write it back out with
the configured renderer. Without a file argument the document is read from
standard input.`,
		Example: `  mdtree render README.md
  mdtree render -r json --compact README.md
  cat notes.md | mdtree render -r text
  mdtree render -b json tree.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(cmd, nil)
			if err != nil {
				return err
			}

			root, err := parseInput(cmd, cfg, args)
			if err != nil {
				return err
			}

			r, err := newRenderer(cfg, compact)
			if err != nil {
				return err
			}

			logging.FromContext(cmd.Context()).Debug("rendering",
				logging.FieldRenderer, cfg.Renderer,
				logging.FieldNodes, countNodes(root),
			)
			return r.Render(cmd.OutOrStdout(), root)
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "write JSON on a single line")

	return cmd
}
