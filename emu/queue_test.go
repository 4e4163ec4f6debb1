package emu

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestQueueOrder(t *testing.T) {
	q := newQueue[int]()

	if got := q.poll(nil); len(got) != 0 {
		t.Fatalf("empty queue gave %v", got)
	}

	for i := range 3 {
		q.push(i)
	}
	got := q.poll(nil)
	if diff := cmp.Diff([]int{0, 1, 2}, got); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}

	// Items are appended to dst.
	q.push(3)
	got = q.poll(got[:1])
	if diff := cmp.Diff([]int{0, 3}, got); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}

	if got := q.poll(nil); len(got) != 0 {
		t.Errorf("drained queue gave %v", got)
	}
}

func TestQueueUnbounded(t *testing.T) {
	const n = 1 << 20

	q := newQueue[int]()
	for i := range n {
		q.push(i)
	}
	got := q.take(nil)
	if len(got) != n {
		t.Fatalf("got %d items, want %d", len(got), n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("item %d = %d", i, v)
		}
	}
	if q.items != nil {
		t.Errorf("large buffer not released")
	}
}

func TestQueueConcurrent(t *testing.T) {
	const (
		producers = 4
		n         = 10000
	)

	q := newQueue[int]()
	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range n {
				q.push(p*n + i)
			}
		}()
	}

	// Per producer order is kept.
	next := make([]int, producers)
	var got []int
	total := 0
	for total < producers*n {
		<-q.ready
		got = q.take(got[:0])
		for _, v := range got {
			p, i := v/n, v%n
			if i != next[p] {
				t.Fatalf("producer %d: got item %d, want %d", p, i, next[p])
			}
			next[p]++
		}
		total += len(got)
	}
	wg.Wait()
}
