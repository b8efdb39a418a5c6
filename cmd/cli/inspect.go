package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/QTest-hq/qtest-studio/pkg/testcase"
)

func (a *app) inspectCmd() *cobra.Command {
	var modelFile string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the categories of a model and which one will be rendered",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFilePath(modelFile); err != nil {
				return err
			}

			m, err := testcase.LoadFile(modelFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printCategories(out, m)

			active := m.ActiveCategory()
			if active == testcase.CategoryNone {
				fmt.Fprintln(out, "\n⚠️  No active category, nothing will be generated")
				return nil
			}
			fmt.Fprintf(out, "\nSelected: %s\n", active)

			if err := m.Validate(); err != nil {
				fmt.Fprintf(out, "⚠️  %v\n", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelFile, "model", "m", "", "Model file (.json, .yaml)")
	cmd.MarkFlagRequired("model")

	return cmd
}

func printCategories(w io.Writer, m *testcase.Model) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Category", "Counter", "Statements", "Active"})
	table.SetBorder(false)

	counters := map[testcase.Category]int{
		testcase.CategoryReact:     m.React.HasReact,
		testcase.CategoryRedux:     m.Redux.HasRedux,
		testcase.CategoryHooks:     m.Hooks.HasHooks,
		testcase.CategoryEndpoint:  m.Endpoint.HasEndpoint,
		testcase.CategoryPuppeteer: m.Puppeteer.HasPuppeteer,
	}
	statements := map[testcase.Category]int{
		testcase.CategoryReact:     len(m.React.Statements.AllIDs),
		testcase.CategoryRedux:     len(m.Redux.ReduxStatements),
		testcase.CategoryHooks:     len(m.Hooks.HooksStatements),
		testcase.CategoryEndpoint:  len(m.Endpoint.EndpointStatements),
		testcase.CategoryPuppeteer: len(m.Puppeteer.PuppeteerStatements),
	}

	for _, c := range testcase.Priority {
		active := ""
		if m.IsActive(c) {
			active = "yes"
		}
		table.Append([]string{
			string(c),
			strconv.Itoa(counters[c]),
			strconv.Itoa(statements[c]),
			active,
		})
	}

	table.Render()
}
