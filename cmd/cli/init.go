package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/QTest-hq/qtest-studio/internal/config"
	"github.com/QTest-hq/qtest-studio/pkg/testcase"
)

const sampleModelFile = "sample.model.json"

func (a *app) initCmd() *cobra.Command {
	var (
		force  bool
		sample bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .qstudio.yaml with the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := a.root()
			if err := validateDirPath(root); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			cfgPath := filepath.Join(root, config.ProjectConfigFile)
			if _, err := os.Stat(cfgPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
			}

			cfg, err := a.projectConfig(root)
			if err != nil {
				return err
			}
			if err := config.SaveProjectConfig(root, cfg); err != nil {
				return fmt.Errorf("failed to write %s: %w", cfgPath, err)
			}
			fmt.Fprintf(out, "✅ Wrote %s\n", cfgPath)

			if !sample {
				return nil
			}

			data, err := json.MarshalIndent(sampleModel(root), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode sample model: %w", err)
			}
			modelPath := filepath.Join(root, sampleModelFile)
			if err := os.WriteFile(modelPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", modelPath, err)
			}
			fmt.Fprintf(out, "✅ Wrote %s\n", modelPath)
			fmt.Fprintf(out, "\nNext: qstudio export -m %s -n Sample --root %s\n", modelPath, root)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .qstudio.yaml")
	cmd.Flags().BoolVar(&sample, "sample", true, "Also write a sample react model")

	return cmd
}

// sampleModel is a react model rendering a button, clicking it and
// asserting on the result
func sampleModel(root string) *testcase.Model {
	b := testcase.NewBuilder(root).
		Toggle(testcase.CategoryReact).
		SetComponent("App", filepath.Join(root, "src", "App.jsx"))

	d := b.AddDescribeBlock("App")
	it := b.AddItStatement(d, "renders the counter")
	b.AddRender(it, testcase.Prop{PropKey: "start", PropValue: "0"})
	b.AddAction(it, testcase.Statement{
		EventType:     "click",
		QueryVariant:  "getBy",
		QuerySelector: "Text",
		QueryValue:    "Increment",
	})
	b.AddAssertion(it, testcase.Statement{
		QueryVariant:  "getBy",
		QuerySelector: "Text",
		QueryValue:    "1",
		MatcherType:   "toBeInTheDocument",
	})

	return b.Build()
}
