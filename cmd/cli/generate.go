package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/QTest-hq/qtest-studio/internal/generator"
	"github.com/QTest-hq/qtest-studio/pkg/testcase"
)

func (a *app) generator(root string) (*generator.Generator, bool, error) {
	cfg, err := a.projectConfig(root)
	if err != nil {
		return nil, false, err
	}
	return generator.NewGenerator(generator.WithIndentSize(cfg.Format.IndentSize)), cfg.Export.StrictFormat, nil
}

func (a *app) generateCmd() *cobra.Command {
	var (
		modelFile  string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a model and print the test source",
		Long: `Renders a test-case model (JSON or YAML) into Jest source.

Only the first active category is rendered, in the order
react, redux, hooks, endpoint, puppeteer.

Example:
  qstudio generate -m button.model.json
  qstudio generate -m button.model.yaml -o Button.test.js`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFilePath(modelFile); err != nil {
				return err
			}

			m, err := testcase.LoadFile(modelFile)
			if err != nil {
				return err
			}
			if m.ProjectRoot == "" {
				m.ProjectRoot = a.root()
			}

			gen, strict, err := a.generator(m.ProjectRoot)
			if err != nil {
				return err
			}

			doc, err := gen.Generate(cmd.Context(), m)
			var formatErr *generator.FormatError
			switch {
			case errors.As(err, &formatErr):
				if strict {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %v; printing unformatted source\n", err)
			case err != nil:
				return err
			}

			if outputFile != "" {
				if err := os.WriteFile(outputFile, []byte(doc.Source), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", outputFile, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Wrote %s test to %s\n", doc.Category, outputFile)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), doc.Source)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelFile, "model", "m", "", "Model file (.json, .yaml)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write to this file instead of stdout")
	cmd.MarkFlagRequired("model")

	return cmd
}
