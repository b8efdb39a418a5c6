package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/QTest-hq/qtest-studio/internal/db"
	"github.com/QTest-hq/qtest-studio/internal/exporter"
	qnats "github.com/QTest-hq/qtest-studio/internal/nats"
	"github.com/QTest-hq/qtest-studio/internal/notify"
	"github.com/QTest-hq/qtest-studio/pkg/testcase"
)

// exporter builds an exporter for root with the optional NATS and
// database collaborators. The returned func releases them.
func (a *app) exporter(ctx context.Context, root string) (*exporter.Exporter, func(), error) {
	cfg, err := a.projectConfig(root)
	if err != nil {
		return nil, nil, err
	}

	var closers []func()
	release := func() {
		for _, c := range closers {
			c()
		}
	}

	notifiers := notify.Multi{notify.NewLogNotifier()}
	opts := []exporter.Option{exporter.WithProjectConfig(cfg)}

	if url := a.v.GetString(natsURLFlag); url != "" {
		client, err := qnats.NewClient(url)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, client.Close)
		if err := client.SetupStreams(ctx); err != nil {
			release()
			return nil, nil, err
		}
		notifiers = append(notifiers, notify.NewNATSNotifier(client))
	}

	if url := a.v.GetString(databaseURLFlag); url != "" {
		database, err := db.New(ctx, url)
		if err != nil {
			release()
			return nil, nil, err
		}
		closers = append(closers, database.Close)
		if err := database.Migrate(ctx); err != nil {
			release()
			return nil, nil, err
		}
		opts = append(opts, exporter.WithHistory(db.NewStore(database)))
	}

	opts = append(opts, exporter.WithNotifier(notifiers))
	return exporter.New(opts...), release, nil
}

func (a *app) exportCmd() *cobra.Command {
	var (
		modelFile string
		name      string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a model and write it into the project's test directory",
		Long: `Writes <root>/<test dir>/<name><suffix>, by default
<root>/__tests__/<name>.test.js. An existing file is never overwritten.

Example:
  qstudio export -m button.model.json -n Button --root ./my-app`,
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

			exp, release, err := a.exporter(cmd.Context(), m.ProjectRoot)
			if err != nil {
				return err
			}
			defer release()

			res, err := exp.Export(cmd.Context(), m, name)
			if err != nil {
				return err
			}

			if res.FormatErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %v; wrote unformatted source\n", res.FormatErr)
			}
			log.Debug().Int("bytes", len(res.Content)).Msg("export read back")
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Wrote %s test to %s\n", res.Document.Category, res.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelFile, "model", "m", "", "Model file (.json, .yaml)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Test file name without suffix")
	cmd.MarkFlagRequired("model")
	cmd.MarkFlagRequired("name")

	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a test file name is still free",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := a.root()
			cfg, err := a.projectConfig(root)
			if err != nil {
				return err
			}

			exp := exporter.New(exporter.WithProjectConfig(cfg))
			path, err := exp.CheckName(root, name)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s is free\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Test file name without suffix")
	cmd.MarkFlagRequired("name")

	return cmd
}
