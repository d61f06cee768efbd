package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/internal/ui/pretty"
	"github.com/yaklabco/mdtree/pkg/mdast"
	"github.com/yaklabco/mdtree/pkg/query"
)

type queryFlags struct {
	render bool
	one    bool
	lines  bool
}

func newQueryCommand(g *globalFlags) *cobra.Command {
	flags := &queryFlags{}

	cmd := &cobra.Command{
		Use:     "query PATH [file|-]",
		Aliases: []string{"find"},
		Short:   "Find nodes matching a path expression",
		Long: `Evaluate a path expression against a document and print every matching
node, in document order.

A path is a sequence of steps separated by "/". Each step names one or more
node kinds ("Header", "List|Paragraph", "*") and may carry a predicate in
square brackets written as an expression over the node's attributes:

  Header[level == 2]/Text
  CodeBlock[info == "go"]
  Link[is_autolink]

The command exits with status 1 when nothing matches.`,
		Example: `  mdtree query 'Header[level <= 2]' README.md
  mdtree find --render 'CodeBlock[info == "sh"]' docs/install.md
  cat notes.md | mdtree query --one 'List/ListItem'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, g, flags, args[0], args[1:])
		},
	}

	cmd.Flags().BoolVar(&flags.render, "render", false, "render each match with the configured renderer")
	cmd.Flags().BoolVar(&flags.one, "one", false, "stop at the first match")
	cmd.Flags().BoolVarP(&flags.lines, "lines", "l", false, "prefix each match with its source line")

	return cmd
}

func runQuery(cmd *cobra.Command, g *globalFlags, flags *queryFlags, path string, args []string) error {
	logger := logging.FromContext(cmd.Context())

	cfg, err := g.load(cmd, nil)
	if err != nil {
		return err
	}

	q, err := query.Compile(path, query.WithOnError(func(n *mdast.Node, err error) {
		logger.Warn("predicate failed", logging.FieldQuery, path, "node", n.Label(), logging.FieldError, err)
	}))
	if err != nil {
		return err
	}

	root, err := parseInput(cmd, cfg, args)
	if err != nil {
		return err
	}

	var matches []*mdast.Node
	if flags.one {
		if n := q.FindOne(root); n != nil {
			matches = append(matches, n)
		}
	} else {
		matches = q.Find(root)
	}
	logger.Debug("query evaluated", logging.FieldQuery, q.String(), logging.FieldMatches, len(matches))

	if len(matches) == 0 {
		return ErrNoMatches
	}

	out := cmd.OutOrStdout()
	if flags.render {
		r, err := newRenderer(cfg, false)
		if err != nil {
			return err
		}
		for _, n := range matches {
			if err := r.Render(out, n); err != nil {
				return err
			}
		}
		return nil
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), out))
	for _, n := range matches {
		label := styles.Decorate(n, n.Label())
		if flags.lines {
			label = styles.Dim.Render(fmt.Sprintf("%4d ", n.Line)) + label
		}
		if _, err := fmt.Fprintln(out, label); err != nil {
			return err
		}
	}
	return nil
}
