package main

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/QTest-hq/qtest-studio/internal/project"
)

func (a *app) treeCmd() *cobra.Command {
	var filesOnly bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "List the project tree with git status",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := a.root()
			cfg, err := a.projectConfig(root)
			if err != nil {
				return err
			}

			tree, err := project.Load(root, cfg.Tree.Exclude)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "📁 %s\n", tree.Root)
			if tree.IsRepo {
				fmt.Fprintf(out, "   branch %s at %s\n", tree.Branch, shortCommit(tree.Commit))
			}
			fmt.Fprintln(out)

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"Path", "Status"})
			table.SetBorder(false)
			for _, e := range tree.Entries {
				if filesOnly && e.Dir {
					continue
				}
				path := strings.Repeat("  ", e.Depth) + e.Name
				if e.Dir {
					path += "/"
				}
				table.Append([]string{path, e.Status})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&filesOnly, "files", false, "Only list files")

	return cmd
}

func shortCommit(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
