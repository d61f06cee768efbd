package cli

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdtree/internal/ui/pretty"
)

// maxHelpWidth caps flag usage wrapping on wide terminals.
const maxHelpWidth = 100

// helpStyles colours the help and usage output.
type helpStyles struct {
	heading lipgloss.Style
	command lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{heading: plain, command: plain, flag: plain, dim: plain}
	}
	return helpStyles{
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

const usageTemplate = `{{heading "Usage:"}}{{if .Runnable}}
  {{command .UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{command .CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{heading "Aliases:"}}
  {{dim .NameAndAliases}}{{end}}{{if .HasExample}}

{{heading "Examples:"}}
{{dim .Example}}{{end}}{{if .HasAvailableSubCommands}}

{{heading "Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{command (rpad .Name .NamePadding)}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .LocalFlags}}{{end}}{{if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .InheritedFlags}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{trimRight .}}

{{end}}`

// flagToken matches the flag names at the start of a pflag usage line.
var flagToken = regexp.MustCompile(`^(\s+)((?:-\w, )?--[\w-]+)`)

// HelpFormatter renders styled help for a command tree. Colour is decided
// when help is printed, so --color applies to help output as well.
type HelpFormatter struct {
	colorMode *string
}

// NewHelpFormatter returns a formatter that reads the colour mode through
// colorMode each time help is rendered.
func NewHelpFormatter(colorMode *string) *HelpFormatter {
	return &HelpFormatter{colorMode: colorMode}
}

// ApplyToCommand installs the help and usage functions on cmd. Subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return h.execute(usageTemplate, c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.execute(helpTemplate+usageTemplate, c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) execute(text string, c *cobra.Command) error {
	out := c.OutOrStdout()
	styles := newHelpStyles(pretty.IsColorEnabled(*h.colorMode, out))

	tmpl, err := template.New("help").Funcs(template.FuncMap{
		"heading":   styles.heading.Render,
		"command":   styles.command.Render,
		"dim":       styles.dim.Render,
		"flags":     func(fs flagUsager) string { return styles.flagUsages(fs, helpWidth(out)) },
		"rpad":      rpad,
		"trimRight": trimTrailingWhitespace,
	}).Parse(text)
	if err != nil {
		return fmt.Errorf("parse help template: %w", err)
	}
	return tmpl.Execute(out, c)
}

type flagUsager interface {
	FlagUsagesWrapped(cols int) string
}

// flagUsages styles the flag names in a pflag usage block.
func (s helpStyles) flagUsages(fs flagUsager, width int) string {
	usages := strings.TrimRight(fs.FlagUsagesWrapped(width), "\n")

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = flagToken.ReplaceAllStringFunc(line, func(m string) string {
			parts := flagToken.FindStringSubmatch(m)
			return parts[1] + s.flag.Render(parts[2])
		})
	}
	return strings.Join(lines, "\n")
}

// helpWidth returns the terminal width behind w, or 0 for no wrapping.
func helpWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return min(width, maxHelpWidth)
}

func rpad(s string, padding int) string {
	return fmt.Sprintf("%-*s", padding, s)
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
