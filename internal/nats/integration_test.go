//go:build integration
// +build integration

package nats

import (
	"context"
	"testing"
	"time"

	"github.com/QTest-hq/qtest-studio/internal/testutil"
)

func TestIntegration_HealthCheck(t *testing.T) {
	url := testutil.RequireNATS(t)

	client, err := NewClient(url)
	if err != nil {
		t.Skipf("skipping test: could not connect to NATS: %v", err)
	}
	defer client.Close()

	if err := client.HealthCheck(); err != nil {
		t.Errorf("HealthCheck() error: %v", err)
	}
}

func TestIntegration_PublishAndReplay(t *testing.T) {
	url := testutil.RequireNATS(t)

	client, err := NewClient(url)
	if err != nil {
		t.Skipf("skipping test: could not connect to NATS: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stream, err := client.EnsureStream(ctx, StreamConfig{
		Name:     "QSTUDIO_TEST_EVENTS",
		Subjects: []string{"studiotest.>"},
		MaxAge:   time.Hour,
	})
	if err != nil {
		t.Fatalf("EnsureStream() error: %v", err)
	}
	defer client.js.DeleteStream(context.Background(), "QSTUDIO_TEST_EVENTS")

	ack, err := client.Publish(ctx, "studiotest.file.display", []byte(`{"content":"x"}`))
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if ack.Stream != "QSTUDIO_TEST_EVENTS" {
		t.Errorf("ack.Stream = %s", ack.Stream)
	}

	info, err := stream.Info(ctx)
	if err != nil {
		t.Fatalf("Info() error: %v", err)
	}
	if info.State.Msgs != 1 {
		t.Errorf("stream holds %d messages, want 1", info.State.Msgs)
	}
}

func TestIntegration_CloseThenPublish(t *testing.T) {
	url := testutil.RequireNATS(t)

	client, err := NewClient(url)
	if err != nil {
		t.Skipf("skipping test: could not connect to NATS: %v", err)
	}
	client.Close()

	if _, err := client.Publish(context.Background(), SubjectFileDisplay, nil); err == nil {
		t.Error("Publish() after Close should fail")
	}
}
