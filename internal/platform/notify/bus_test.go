package notify_test

import (
	"strconv"
	"testing"
	"time"

	"flo8/internal/platform/notify"
)

func TestPublishWithoutSubscriberDoesNotBlock(t *testing.T) {
	t.Parallel()
	bus := notify.NewBus()

	done := make(chan struct{})
	go func() {
		bus.Publish(notify.Notice{UserMessage: "dropped", Origin: notify.OriginBootstrap})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("publish without subscriber must not block")
	}
}

func TestSubscriberReceivesNotice(t *testing.T) {
	t.Parallel()
	bus := notify.NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(notify.Notice{UserMessage: "opslaan mislukt", Origin: notify.OriginOnboarding})

	select {
	case got := <-ch:
		if got.UserMessage != "opslaan mislukt" {
			t.Fatalf("unexpected message: %q", got.UserMessage)
		}
		if got.Origin != notify.OriginOnboarding {
			t.Fatalf("unexpected origin: %q", got.Origin)
		}
		if got.OccurredAt.IsZero() {
			t.Fatalf("occurred-at must be stamped")
		}
	case <-time.After(time.Second):
		t.Fatalf("subscriber did not receive notice")
	}
}

func TestUnsubscribeClosesChannelAndStopsDelivery(t *testing.T) {
	t.Parallel()
	bus := notify.NewBus()
	ch, cancel := bus.Subscribe()
	cancel()

	if _, open := <-ch; open {
		t.Fatalf("channel must be closed after unsubscribe")
	}
	// Must not panic or deliver anywhere.
	bus.Publish(notify.Notice{UserMessage: "late", Origin: notify.OriginContent})
	cancel() // second cancel is a no-op
}

func TestFullBufferDropsNewestNotice(t *testing.T) {
	t.Parallel()
	bus := notify.NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	// Publishing past the buffer must never block; once the subscriber's
	// buffer is full the newest notices are discarded, not the buffered ones.
	for i := 0; i < 12; i++ {
		bus.Publish(notify.Notice{
			UserMessage: "n" + strconv.Itoa(i),
			Origin:      notify.OriginProvider,
		})
	}
	if len(ch) != 8 {
		t.Fatalf("expected a full buffer of 8, got %d", len(ch))
	}
	for i := 0; i < 8; i++ {
		got := <-ch
		if want := "n" + strconv.Itoa(i); got.UserMessage != want {
			t.Fatalf("notice %d: got %q, want %q", i, got.UserMessage, want)
		}
	}
	if len(ch) != 0 {
		t.Fatalf("notices past the buffer must be dropped, %d left", len(ch))
	}
}
