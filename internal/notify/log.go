package notify

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogNotifier writes notifications to the logger. File contents are only
// logged as a size unless the logger runs at trace level.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a notifier on the global logger
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: log.With().Str("component", "notify").Logger()}
}

func (l *LogNotifier) DisplayFileCode(_ context.Context, content string) error {
	l.logger.Info().Str("kind", KindDisplayFileCode).Int("bytes", len(content)).Msg("display file code")
	l.logger.Trace().Str("content", content).Msg("file code")
	return nil
}

func (l *LogNotifier) LoadProject(_ context.Context, root string) error {
	l.logger.Info().Str("kind", KindLoadProject).Str("root", root).Msg("load project")
	return nil
}

func (l *LogNotifier) ToggleFolderView(_ context.Context, dir string) error {
	l.logger.Info().Str("kind", KindToggleFolderView).Str("dir", dir).Msg("toggle folder view")
	return nil
}

func (l *LogNotifier) HighlightFile(_ context.Context, name string) error {
	l.logger.Info().Str("kind", KindHighlightFile).Str("file", name).Msg("highlight file")
	return nil
}
