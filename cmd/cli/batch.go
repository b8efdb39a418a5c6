package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/QTest-hq/qtest-studio/internal/exporter"
	"github.com/QTest-hq/qtest-studio/internal/generator"
	"github.com/QTest-hq/qtest-studio/internal/project"
	"github.com/QTest-hq/qtest-studio/pkg/testcase"
)

// batchResult is the outcome for one model file
type batchResult struct {
	File     string
	Category testcase.Category
	Output   string
	Err      error
}

// modelName derives the test file name from a model file name:
// button.model.json -> button
func modelName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.TrimSuffix(name, ".model")
}

func (a *app) batchCmd() *cobra.Command {
	var (
		parallel int
		export   bool
	)

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Render every model file under a directory",
		Long: `Renders every .json, .yaml and .yml model under dir.

Without --export each model is only generated and checked. With
--export each one is written to the project's test directory, named
after the model file (button.model.json -> button.test.js).

Example:
  qstudio batch ./models --parallel 4 --export`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := validateDirPath(dir); err != nil {
				return err
			}

			tree, err := project.Load(dir, nil)
			if err != nil {
				return err
			}
			files := tree.Files("*.json", "*.yaml", "*.yml")
			if len(files) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No model files in %s\n", dir)
				return nil
			}

			var exp *exporter.Exporter
			if export {
				e, release, err := a.exporter(cmd.Context(), a.root())
				if err != nil {
					return err
				}
				defer release()
				exp = e
			}

			gen, strict, err := a.generator(a.root())
			if err != nil {
				return err
			}

			results := make([]batchResult, len(files))

			// models exported under the same name would race for one file;
			// the first in path order keeps it
			skip := make([]bool, len(files))
			if exp != nil {
				owner := make(map[string]string, len(files))
				for i, rel := range files {
					name := modelName(rel)
					if first, ok := owner[name]; ok {
						skip[i] = true
						results[i] = batchResult{
							File: rel,
							Err:  fmt.Errorf("%w: %q is also exported by %s", exporter.ErrNameCollision, name, first),
						}
						continue
					}
					owner[name] = rel
				}
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			if parallel > 0 {
				g.SetLimit(parallel)
			}

			for i, rel := range files {
				if skip[i] {
					continue
				}
				g.Go(func() error {
					res := batchResult{File: rel}
					path := filepath.Join(tree.Root, rel)

					m, err := testcase.LoadFile(path)
					if err != nil {
						res.Err = err
					} else {
						if m.ProjectRoot == "" {
							m.ProjectRoot = a.root()
						}
						if exp != nil {
							var out *exporter.Result
							out, res.Err = exp.Export(ctx, m, modelName(rel))
							if out != nil {
								res.Category = out.Document.Category
								res.Output = out.Path
							}
						} else {
							res.Category, res.Err = generateOnly(ctx, gen, m, strict)
						}
					}

					if res.Err != nil {
						log.Warn().Err(res.Err).Str("file", rel).Msg("model failed")
					}

					results[i] = res
					return nil
				})
			}

			if err := g.Wait(); err != nil {
				return err
			}

			failed := printBatch(cmd, results)
			if failed > 0 {
				return fmt.Errorf("%d of %d models failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&parallel, "parallel", "p", 4, "Number of models processed at once")
	cmd.Flags().BoolVar(&export, "export", false, "Write test files instead of only generating")

	return cmd
}

func generateOnly(ctx context.Context, gen *generator.Generator, m *testcase.Model, strict bool) (testcase.Category, error) {
	doc, err := gen.Generate(ctx, m)
	var formatErr *generator.FormatError
	if errors.As(err, &formatErr) && !strict {
		return doc.Category, nil
	}
	if err != nil {
		return "", err
	}
	return doc.Category, nil
}

func printBatch(cmd *cobra.Command, results []batchResult) int {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Model", "Category", "Result"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	failed := 0
	for _, r := range results {
		result := "ok"
		if r.Output != "" {
			result = r.Output
		}
		if r.Err != nil {
			failed++
			result = "FAILED: " + r.Err.Error()
		}
		table.Append([]string{r.File, string(r.Category), result})
	}
	table.Render()

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d ok, %d failed\n", len(results)-failed, failed)
	return failed
}
