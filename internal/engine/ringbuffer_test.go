package engine

import "testing"

func TestRingBufferAdd(t *testing.T) {
	rb := NewRingBuffer[int64](5)
	for i := 0; i < 3; i++ {
		rb.Add(int64(i))
	}
	if rb.Len() != 3 {
		t.Errorf("expected len 3, got %d", rb.Len())
	}
}

func TestRingBufferWrap(t *testing.T) {
	rb := NewRingBuffer[int64](3)
	for i := 0; i < 5; i++ {
		rb.Add(int64(i))
	}
	if rb.Len() != 3 {
		t.Errorf("expected len 3, got %d", rb.Len())
	}
	items := rb.All()
	if items[0] != 2 {
		t.Errorf("expected oldest item 2, got %d", items[0])
	}
	if items[2] != 4 {
		t.Errorf("expected newest item 4, got %d", items[2])
	}
}

func TestRingBufferEmpty(t *testing.T) {
	rb := NewRingBuffer[int64](10)
	if rb.Len() != 0 {
		t.Error("new ring buffer should be empty")
	}
	if _, ok := rb.Last(); ok {
		t.Error("Last() on empty buffer should return false")
	}
	if len(rb.All()) != 0 {
		t.Error("All() on empty buffer should return empty slice")
	}
}

func TestFilledRingBufferKeepsCapacity(t *testing.T) {
	rb := NewFilledRingBuffer[int64](HistorySize, 0)
	if rb.Len() != HistorySize {
		t.Fatalf("expected len %d, got %d", HistorySize, rb.Len())
	}
	for i := 0; i < 3*HistorySize+7; i++ {
		rb.Add(int64(i))
		if rb.Len() != HistorySize {
			t.Fatalf("after %d adds expected len %d, got %d", i+1, HistorySize, rb.Len())
		}
	}
	last, _ := rb.Last()
	if last != int64(3*HistorySize+6) {
		t.Errorf("expected newest %d, got %d", 3*HistorySize+6, last)
	}
}
