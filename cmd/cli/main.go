package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/QTest-hq/qtest-studio/internal/config"
	"github.com/QTest-hq/qtest-studio/internal/logging"
)

var version = "dev"

const envPrefix = "QSTUDIO"

// Flag names double as viper keys
const (
	rootFlag         = "root"
	logLevelFlag     = "log-level"
	logFileFlag      = "log-file"
	testDirFlag      = "test-dir"
	suffixFlag       = "suffix"
	indentFlag       = "indent"
	strictFormatFlag = "strict-format"
	gitAddFlag       = "git-add"
	databaseURLFlag  = "database-url"
	natsURLFlag      = "nats-url"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries the settings shared by all subcommands. Flags win over
// QSTUDIO_* environment variables, which win over .qstudio.yaml.
type app struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	env, _ := config.Load()

	rootCmd := &cobra.Command{
		Use:           "qstudio",
		Short:         "qtest-studio - Jest test files from test-case models",
		Long:          `qstudio renders test-case models built in the visual editor into Jest test files.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logging.Options{
				Level:   a.v.GetString(logLevelFlag),
				File:    a.v.GetString(logFileFlag),
				Console: true,
			})
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(rootFlag, env.ProjectRoot, "Project root the test files are written to")
	flags.String(logLevelFlag, "warn", "Log level (debug, info, warn, error)")
	flags.String(logFileFlag, env.LogFile, "Also log to this file, rotated")
	flags.String(testDirFlag, "", "Test directory under the project root (default from .qstudio.yaml)")
	flags.String(suffixFlag, "", "Test file suffix (default from .qstudio.yaml)")
	flags.Int(indentFlag, 0, "Indentation width of generated source")
	flags.Bool(strictFormatFlag, false, "Fail instead of writing unformatted source")
	flags.Bool(gitAddFlag, false, "Stage written test files in git")
	flags.String(databaseURLFlag, env.DatabaseURL, "PostgreSQL URL for export history")
	flags.String(natsURLFlag, env.NATSURL, "NATS URL for editor notifications")
	flags.VisitAll(func(f *pflag.Flag) {
		cobra.CheckErr(a.v.BindPFlag(f.Name, f))
	})

	rootCmd.AddCommand(a.generateCmd())
	rootCmd.AddCommand(a.exportCmd())
	rootCmd.AddCommand(a.checkCmd())
	rootCmd.AddCommand(a.inspectCmd())
	rootCmd.AddCommand(a.batchCmd())
	rootCmd.AddCommand(a.treeCmd())
	rootCmd.AddCommand(a.historyCmd())
	rootCmd.AddCommand(a.initCmd())

	return rootCmd
}

func (a *app) root() string {
	return a.v.GetString(rootFlag)
}

// projectConfig loads .qstudio.yaml from root and applies flag overrides
func (a *app) projectConfig(root string) (*config.ProjectConfig, error) {
	cfg, err := config.LoadProjectConfig(root)
	if err != nil {
		return nil, err
	}

	cfg.Merge(&config.ProjectConfig{
		Export: config.ExportConfig{
			TestDir:      a.v.GetString(testDirFlag),
			FileSuffix:   a.v.GetString(suffixFlag),
			StrictFormat: a.v.GetBool(strictFormatFlag),
			GitAdd:       a.v.GetBool(gitAddFlag),
		},
		Format: config.FormatConfig{IndentSize: a.v.GetInt(indentFlag)},
	})

	log.Debug().
		Str("root", root).
		Str("test_dir", cfg.Export.TestDir).
		Str("suffix", cfg.Export.FileSuffix).
		Msg("project config loaded")

	return cfg, nil
}

func validateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("file path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func validateDirPath(path string) error {
	if path == "" {
		return fmt.Errorf("directory path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// maskConnectionString hides the password of a URL for display
func maskConnectionString(s string) string {
	scheme := strings.Index(s, "://")
	at := strings.LastIndex(s, "@")
	if scheme < 0 || at < scheme {
		return s
	}
	userinfo := s[scheme+3 : at]
	colon := strings.Index(userinfo, ":")
	if colon < 0 {
		return s
	}
	return s[:scheme+3] + userinfo[:colon] + ":****" + s[at:]
}
