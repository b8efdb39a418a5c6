package nats

import (
	"context"
	"time"
)

// StreamEvents holds every event the studio publishes
const StreamEvents = "QSTUDIO_EVENTS"

// Subjects, one per notification kind
const (
	SubjectEventsAll      = "studio.>"
	SubjectFileDisplay    = "studio.file.display"
	SubjectProjectLoad    = "studio.project.load"
	SubjectFolderToggle   = "studio.folder.toggle"
	SubjectFileHighlight  = "studio.file.highlight"
	SubjectExportComplete = "studio.export.complete"
)

// DefaultStreamConfig returns the configuration of the events stream
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		Name:        StreamEvents,
		Subjects:    []string{SubjectEventsAll},
		MaxMsgs:     10000,
		MaxAge:      24 * time.Hour,
		Description: "qtest-studio editor notifications",
	}
}

// SetupStreams creates the events stream
func (c *Client) SetupStreams(ctx context.Context) error {
	_, err := c.EnsureStream(ctx, DefaultStreamConfig())
	return err
}

// SubjectForEvent returns the subject an event kind is published on
func SubjectForEvent(kind string) string {
	switch kind {
	case "display_file_code":
		return SubjectFileDisplay
	case "load_project":
		return SubjectProjectLoad
	case "toggle_folder_view":
		return SubjectFolderToggle
	case "highlight_file":
		return SubjectFileHighlight
	case "export_complete":
		return SubjectExportComplete
	default:
		return ""
	}
}
