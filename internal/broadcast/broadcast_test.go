package broadcast

import (
	"testing"
	"time"
)

func TestLateSubscriberDoesNotReplay(t *testing.T) {
	b := New[int]()
	b.Publish(1)

	ch, cancel := b.Subscribe(4)
	defer cancel()
	b.Publish(2)

	select {
	case v := <-ch:
		if v != 2 {
			t.Fatalf("got %d, want 2", v)
		}
	default:
		t.Fatal("expected 2 to be delivered")
	}
	select {
	case v := <-ch:
		t.Fatalf("unexpected extra value %d", v)
	default:
	}
}

func TestMultipleSubscribersSeeSamePrefix(t *testing.T) {
	b := New[string]()
	ch1, cancel1 := b.Subscribe(4)
	ch2, cancel2 := b.Subscribe(4)
	defer cancel1()
	defer cancel2()

	b.Publish("a")
	b.Publish("b")

	for _, ch := range []<-chan string{ch1, ch2} {
		if v := <-ch; v != "a" {
			t.Fatalf("got %q, want a", v)
		}
		if v := <-ch; v != "b" {
			t.Fatalf("got %q, want b", v)
		}
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New[int]()
	ch, cancel := b.Subscribe(1)
	cancel()
	b.Publish(1)

	if _, ok := <-ch; ok {
		t.Fatal("expected channel closed after cancel")
	}
}

func TestCloseClosesAllSubscribers(t *testing.T) {
	b := New[int]()
	ch, _ := b.Subscribe(1)
	b.Close()

	if _, ok := <-ch; ok {
		t.Fatal("expected channel closed after Close")
	}

	ch2, _ := b.Subscribe(1)
	if _, ok := <-ch2; ok {
		t.Fatal("expected Subscribe after Close to return closed channel")
	}
}

func TestDropOldestUnderBackpressure(t *testing.T) {
	b := New[int]()
	ch, cancel := b.Subscribe(1)
	defer cancel()

	b.Publish(1)
	b.Publish(2)

	if v := <-ch; v != 2 {
		t.Fatalf("got %d, want 2 (oldest dropped)", v)
	}
}

func TestBlockingPublishDoesNotDropUnderBackpressure(t *testing.T) {
	b := NewBlocking[int]()
	ch, cancel := b.Subscribe(1)
	defer cancel()

	b.Publish(1)

	done := make(chan struct{})
	go func() {
		b.Publish(2)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Publish returned before the full channel was drained")
	case <-time.After(20 * time.Millisecond):
	}

	if v := <-ch; v != 1 {
		t.Fatalf("got %d, want 1 (nothing dropped)", v)
	}
	<-done

	if v := <-ch; v != 2 {
		t.Fatalf("got %d, want 2", v)
	}
}
