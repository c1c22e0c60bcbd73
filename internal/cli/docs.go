package cli

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/deplift/deplift/pkg/errors"
)

//go:embed docs/*.md
var docsFS embed.FS

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show documentation topics",
		Long:  "Renders built-in documentation. Without arguments, lists the available topics.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listTopics(cmd)
			}
			return showTopic(cmd, args[0])
		},
	}
}

func listTopics(cmd *cobra.Command) error {
	entries, err := docsFS.ReadDir("docs")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to read embedded docs")
	}

	var names []string
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)

	fmt.Fprintln(cmd.OutOrStdout(), "Available topics:")
	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\nUse 'deplift docs <topic>' to read one.")
	return nil
}

func showTopic(cmd *cobra.Command, topic string) error {
	content, err := docsFS.ReadFile("docs/" + topic + ".md")
	if err != nil {
		return errors.Newf(errors.ErrNotFound, "unknown topic %q", topic)
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		// Fall back to the raw markdown when the terminal renderer
		// cannot be constructed.
		fmt.Fprintln(cmd.OutOrStdout(), string(content))
		return nil
	}

	rendered, err := renderer.Render(string(content))
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), string(content))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}
