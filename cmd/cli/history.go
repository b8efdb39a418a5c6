package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/QTest-hq/qtest-studio/internal/db"
)

func (a *app) historyCmd() *cobra.Command {
	var (
		limit int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded exports",
		Long: `Lists exports recorded in the database. Requires --database-url
or QSTUDIO_DATABASE_URL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			url := a.v.GetString(databaseURLFlag)
			if url == "" {
				return fmt.Errorf("database URL is required (--database-url or %s_DATABASE_URL)", envPrefix)
			}

			ctx := cmd.Context()
			fmt.Fprintf(cmd.ErrOrStderr(), "Connecting to %s\n", maskConnectionString(url))

			database, err := db.New(ctx, url)
			if err != nil {
				return err
			}
			defer database.Close()

			root := a.root()
			if all {
				root = ""
			}

			exports, err := db.NewStore(database).ListExports(ctx, root, limit, 0)
			if err != nil {
				return err
			}

			if len(exports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No exports recorded")
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"When", "Name", "Category", "Formatted", "Path"})
			table.SetBorder(false)
			table.SetAutoWrapText(false)
			for _, e := range exports {
				formatted := "yes"
				if !e.Formatted {
					formatted = "no"
				}
				table.Append([]string{
					e.CreatedAt.Format("2006-01-02 15:04"),
					e.FileName,
					e.Category,
					formatted,
					e.Path,
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of exports")
	cmd.Flags().BoolVar(&all, "all", false, "Include every project, not only --root")

	return cmd
}
