package engine

import (
	"sync"
	"testing"
)

func TestQueueOrder(t *testing.T) {
	q := NewQueue[int]()
	for i := 0; i < 5; i++ {
		q.Send(i)
	}
	for i := 0; i < 5; i++ {
		v, ok := q.TryRecv()
		if !ok || v != i {
			t.Fatalf("expected %d, got %d (ok=%v)", i, v, ok)
		}
	}
	if _, ok := q.TryRecv(); ok {
		t.Error("expected empty queue")
	}
}

func TestQueueDrain(t *testing.T) {
	q := NewQueue[string]()
	if got := q.Drain(); len(got) != 0 {
		t.Errorf("expected nothing, got %v", got)
	}
	q.Send("a")
	q.Send("b")
	got := q.Drain()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("unexpected drain %v", got)
	}
	if q.Len() != 0 {
		t.Errorf("expected empty queue after drain, got %d", q.Len())
	}
}

func TestQueuePerProducerOrder(t *testing.T) {
	q := NewQueue[[2]int]()
	const producers, perProducer = 8, 200

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Send([2]int{p, i})
			}
		}(p)
	}
	wg.Wait()

	next := make([]int, producers)
	for _, item := range q.Drain() {
		p, i := item[0], item[1]
		if i != next[p] {
			t.Fatalf("producer %d: expected seq %d, got %d", p, next[p], i)
		}
		next[p]++
	}
	for p, n := range next {
		if n != perProducer {
			t.Errorf("producer %d: expected %d items, got %d", p, perProducer, n)
		}
	}
}
