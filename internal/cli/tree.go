package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/ui/pretty"
)

func newTreeCommand(g *globalFlags) *cobra.Command {
	var lines bool

	cmd := &cobra.Command{
		Use:   "tree [file|-]",
		Short: "Print the document tree",
		Long: `Parse a document and print its node tree, one node per line, with the
attributes that distinguish each node.`,
		Example: `  mdtree tree README.md
  mdtree tree --lines README.md
  echo '# Hi *there*' | mdtree tree`,
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

			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), out))
			_, err = fmt.Fprint(out, styles.FormatTree(root, lines))
			return err
		},
	}

	cmd.Flags().BoolVarP(&lines, "lines", "l", false, "prefix each node with its source line")

	return cmd
}
