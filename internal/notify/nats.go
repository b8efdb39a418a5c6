package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	qnats "github.com/QTest-hq/qtest-studio/internal/nats"
)

// Publisher is the part of the NATS client the notifier needs
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte) (*jetstream.PubAck, error)
}

// NATSNotifier publishes every notification as a JSON Event on the
// subject of its kind.
type NATSNotifier struct {
	pub Publisher
}

// NewNATSNotifier creates a notifier publishing through pub
func NewNATSNotifier(pub Publisher) *NATSNotifier {
	return &NATSNotifier{pub: pub}
}

func (n *NATSNotifier) publish(ctx context.Context, kind, payload string) error {
	data, err := json.Marshal(newEvent(kind, payload))
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", kind, err)
	}

	if _, err := n.pub.Publish(ctx, qnats.SubjectForEvent(kind), data); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", kind, err)
	}
	return nil
}

func (n *NATSNotifier) DisplayFileCode(ctx context.Context, content string) error {
	return n.publish(ctx, KindDisplayFileCode, content)
}

func (n *NATSNotifier) LoadProject(ctx context.Context, root string) error {
	return n.publish(ctx, KindLoadProject, root)
}

func (n *NATSNotifier) ToggleFolderView(ctx context.Context, dir string) error {
	return n.publish(ctx, KindToggleFolderView, dir)
}

func (n *NATSNotifier) HighlightFile(ctx context.Context, name string) error {
	return n.publish(ctx, KindHighlightFile, name)
}
