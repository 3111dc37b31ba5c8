package queue

import (
	"sync"
	"testing"
	"time"
)

func TestFIFO(t *testing.T) {
	q := NewMessageQueue[int]()
	for i := 0; i < 5; i++ {
		q.Send(i)
	}
	if q.Size() != 5 {
		t.Fatalf("size = %d, want 5", q.Size())
	}
	for i := 0; i < 5; i++ {
		if got := q.WaitForMessage(); got != i {
			t.Errorf("message %d = %d", i, got)
		}
	}
	if !q.Empty() {
		t.Errorf("queue not empty after receiving all messages")
	}
}

func TestClear(t *testing.T) {
	q := NewMessageQueue[string]()
	if n := q.Clear(); n != 0 {
		t.Errorf("Clear() on empty queue = %d", n)
	}
	q.Send("a")
	q.Send("b")
	q.Send("c")
	if n := q.Clear(); n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if !q.Empty() {
		t.Errorf("queue not empty after Clear()")
	}
	q.Send("d")
	if got := q.WaitForMessage(); got != "d" {
		t.Errorf("got %q after Clear(), want %q", got, "d")
	}
}

func TestWaitForMessageBlocks(t *testing.T) {
	q := NewMessageQueue[int]()
	received := make(chan int)

	go func() {
		received <- q.WaitForMessage()
	}()

	select {
	case v := <-received:
		t.Fatalf("received %d from an empty queue", v)
	case <-time.After(20 * time.Millisecond):
	}

	q.Send(42)
	select {
	case v := <-received:
		if v != 42 {
			t.Errorf("received %d, want 42", v)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("receiver was not woken up")
	}
}

func TestConcurrentSendersAndReceivers(t *testing.T) {
	const senders = 8
	const perSender = 1000

	q := NewMessageQueue[int]()
	var wg sync.WaitGroup
	for s := 0; s < senders; s++ {
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			for i := 0; i < perSender; i++ {
				q.Send(s*perSender + i)
			}
		}(s)
	}

	results := make(chan int, senders*perSender)
	var receivers sync.WaitGroup
	for r := 0; r < 4; r++ {
		receivers.Add(1)
		go func() {
			defer receivers.Done()
			for {
				v := q.WaitForMessage()
				if v < 0 {
					return
				}
				results <- v
			}
		}()
	}

	wg.Wait()
	for r := 0; r < 4; r++ {
		q.Send(-1)
	}
	receivers.Wait()
	close(results)

	seen := make(map[int]bool)
	for v := range results {
		if seen[v] {
			t.Fatalf("message %d received twice", v)
		}
		seen[v] = true
	}
	if len(seen) != senders*perSender {
		t.Errorf("received %d messages, want %d", len(seen), senders*perSender)
	}
}
