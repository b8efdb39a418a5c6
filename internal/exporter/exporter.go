// Package exporter writes generated test files into a project
package exporter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/QTest-hq/qtest-studio/internal/config"
	"github.com/QTest-hq/qtest-studio/internal/db"
	"github.com/QTest-hq/qtest-studio/internal/generator"
	"github.com/QTest-hq/qtest-studio/internal/notify"
	"github.com/QTest-hq/qtest-studio/internal/project"
	"github.com/QTest-hq/qtest-studio/pkg/testcase"
)

var (
	// ErrNameCollision is returned when the target test file already exists
	ErrNameCollision = errors.New("test file already exists")

	// ErrWriteFailed is returned when the test file or its directory cannot be written
	ErrWriteFailed = errors.New("failed to write test file")

	// ErrInvalidName is returned for empty names and names containing a path separator
	ErrInvalidName = errors.New("invalid test file name")
)

// CollisionError names the file that is already there
type CollisionError struct {
	Name string
	Path string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("A file with the name '%s' already exists.", e.Name)
}

func (e *CollisionError) Unwrap() error {
	return ErrNameCollision
}

// History records completed exports
type History interface {
	RecordExport(ctx context.Context, e *db.Export) error
}

// Result describes a completed export
type Result struct {
	Path     string              `json:"path"`
	Document *generator.Document `json:"document"`
	// Content is the file as read back from disk
	Content string `json:"content"`
	// FormatErr is set when the file was written unformatted
	FormatErr error `json:"-"`
}

// Exporter generates test files and writes them under a project's test directory
type Exporter struct {
	fs       FileSystem
	gen      *generator.Generator
	notifier notify.Notifier
	history  History
	cfg      *config.ProjectConfig
	stage    func(path string) error
}

// Option configures an Exporter
type Option func(*Exporter)

// WithFileSystem replaces the local disk
func WithFileSystem(fs FileSystem) Option {
	return func(e *Exporter) { e.fs = fs }
}

// WithNotifier sets where export notifications go
func WithNotifier(n notify.Notifier) Option {
	return func(e *Exporter) { e.notifier = n }
}

// WithHistory records every export
func WithHistory(h History) Option {
	return func(e *Exporter) { e.history = h }
}

// WithProjectConfig overrides the default project settings
func WithProjectConfig(cfg *config.ProjectConfig) Option {
	return func(e *Exporter) { e.cfg = cfg }
}

// WithGenerator replaces the generator built from the project settings
func WithGenerator(g *generator.Generator) Option {
	return func(e *Exporter) { e.gen = g }
}

// WithStager replaces the git staging of written files
func WithStager(fn func(path string) error) Option {
	return func(e *Exporter) { e.stage = fn }
}

// New creates an exporter. Without options it writes to disk, notifies the
// log and keeps no history.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		fs:    OSFileSystem{},
		cfg:   config.DefaultProjectConfig(),
		stage: project.Stage,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.notifier == nil {
		e.notifier = notify.NewLogNotifier()
	}
	if e.gen == nil {
		e.gen = generator.NewGenerator(generator.WithIndentSize(e.cfg.Format.IndentSize))
	}
	return e
}

// TestDir returns the directory test files of a project are written to
func (e *Exporter) TestDir(projectRoot string) string {
	return filepath.Join(projectRoot, e.cfg.Export.TestDir)
}

// TargetPath returns the path of the test file named fileName
func (e *Exporter) TargetPath(projectRoot, fileName string) string {
	return filepath.Join(e.TestDir(projectRoot), fileName+e.cfg.Export.FileSuffix)
}

// CheckName returns the target path of fileName, or a *CollisionError when
// a file is already there
func (e *Exporter) CheckName(projectRoot, fileName string) (string, error) {
	if fileName == "" || strings.ContainsAny(fileName, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, fileName)
	}

	path := e.TargetPath(projectRoot, fileName)
	exists, err := e.fs.Exists(path)
	if err != nil {
		return "", fmt.Errorf("failed to check %s: %w", path, err)
	}
	if exists {
		return path, &CollisionError{Name: fileName, Path: path}
	}
	return path, nil
}

// Export generates the test file for m and writes it as fileName in the
// project's test directory. Notifications, staging and history are best
// effort; their failures are logged.
func (e *Exporter) Export(ctx context.Context, m *testcase.Model, fileName string) (*Result, error) {
	root := m.ProjectRoot
	path, err := e.CheckName(root, fileName)
	if err != nil {
		return nil, err
	}

	doc, err := e.gen.Generate(ctx, m)
	var formatErr *generator.FormatError
	switch {
	case errors.As(err, &formatErr):
		if e.cfg.Export.StrictFormat {
			return nil, err
		}
		log.Warn().Err(err).Str("file", fileName).Msg("writing unformatted test file")
	case err != nil:
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := e.fs.MkdirAll(dir); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrWriteFailed, dir, err)
	}
	// a concurrent export may have created the file since CheckName
	if err := e.fs.WriteFile(path, []byte(doc.Source)); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, &CollisionError{Name: fileName, Path: path}
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}

	data, err := e.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read back %s: %w", path, err)
	}

	res := &Result{Path: path, Document: doc, Content: string(data)}
	if formatErr != nil {
		res.FormatErr = formatErr
	}

	log.Info().
		Str("path", path).
		Str("category", string(doc.Category)).
		Bool("formatted", doc.Formatted).
		Msg("exported test file")

	e.notify(ctx, root, dir, filepath.Base(path), res.Content)

	if e.cfg.Export.GitAdd && e.stage != nil {
		if err := e.stage(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to stage test file")
		}
	}

	if e.history != nil {
		rec := &db.Export{
			ProjectRoot: root,
			FileName:    fileName,
			Path:        path,
			Category:    string(doc.Category),
			Formatted:   doc.Formatted,
			Source:      res.Content,
		}
		if err := e.history.RecordExport(ctx, rec); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to record export")
		}
	}

	return res, nil
}

func (e *Exporter) notify(ctx context.Context, root, dir, name, content string) {
	steps := []struct {
		kind string
		fn   func() error
	}{
		{notify.KindDisplayFileCode, func() error { return e.notifier.DisplayFileCode(ctx, content) }},
		{notify.KindLoadProject, func() error { return e.notifier.LoadProject(ctx, root) }},
		{notify.KindToggleFolderView, func() error { return e.notifier.ToggleFolderView(ctx, dir) }},
		{notify.KindHighlightFile, func() error { return e.notifier.HighlightFile(ctx, name) }},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			log.Warn().Err(err).Str("kind", s.kind).Msg("notification failed")
		}
	}
}
