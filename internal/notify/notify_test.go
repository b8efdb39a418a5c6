package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qnats "github.com/QTest-hq/qtest-studio/internal/nats"
)

type published struct {
	subject string
	data    []byte
}

type fakePublisher struct {
	msgs []published
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, subject string, data []byte) (*jetstream.PubAck, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.msgs = append(f.msgs, published{subject: subject, data: data})
	return &jetstream.PubAck{Stream: qnats.StreamEvents}, nil
}

type failing struct{ Recorder }

func (f *failing) LoadProject(context.Context, string) error { return errors.New("down") }

func sendAll(t *testing.T, n Notifier) error {
	t.Helper()
	ctx := context.Background()
	return errors.Join(
		n.DisplayFileCode(ctx, "test('x');\n"),
		n.LoadProject(ctx, "/proj"),
		n.ToggleFolderView(ctx, "/proj/__tests__"),
		n.HighlightFile(ctx, "Button.test.js"),
	)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, sendAll(t, r))

	assert.Equal(t, []string{KindDisplayFileCode, KindLoadProject, KindToggleFolderView, KindHighlightFile}, r.Kinds())
	assert.Equal(t, "Button.test.js", r.Events()[3].Payload)
}

func TestNATSNotifier(t *testing.T) {
	pub := &fakePublisher{}
	require.NoError(t, sendAll(t, NewNATSNotifier(pub)))

	require.Len(t, pub.msgs, 4)
	assert.Equal(t, qnats.SubjectFileDisplay, pub.msgs[0].subject)
	assert.Equal(t, qnats.SubjectProjectLoad, pub.msgs[1].subject)
	assert.Equal(t, qnats.SubjectFolderToggle, pub.msgs[2].subject)
	assert.Equal(t, qnats.SubjectFileHighlight, pub.msgs[3].subject)

	var ev Event
	require.NoError(t, json.Unmarshal(pub.msgs[1].data, &ev))
	assert.Equal(t, KindLoadProject, ev.Kind)
	assert.Equal(t, "/proj", ev.Payload)
	assert.False(t, ev.SentAt.IsZero())
}

func TestNATSNotifier_PublishError(t *testing.T) {
	n := NewNATSNotifier(&fakePublisher{err: errors.New("no responders")})

	err := n.HighlightFile(context.Background(), "a.test.js")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "highlight_file")
	assert.Contains(t, err.Error(), "no responders")
}

func TestMulti_CallsEveryNotifier(t *testing.T) {
	first := &failing{}
	second := &Recorder{}

	err := sendAll(t, Multi{first, NewLogNotifier(), second})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "down")

	assert.Len(t, second.Kinds(), 4)
	assert.Equal(t, []string{KindDisplayFileCode, KindToggleFolderView, KindHighlightFile}, first.Kinds())
}
