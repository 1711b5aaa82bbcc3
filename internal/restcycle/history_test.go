package restcycle

import "testing"

func TestRingAppendAndItems(t *testing.T) {
	r := NewRing(3)
	if r.Len() != 0 {
		t.Fatalf("fresh ring has length %d", r.Len())
	}
	if _, ok := r.Last(); ok {
		t.Fatal("fresh ring should have no last sample")
	}

	for i := 1; i <= 3; i++ {
		r.Append(TickSample{Tick: i})
	}
	if r.Len() != 3 {
		t.Fatalf("length = %d, want 3", r.Len())
	}
	items := r.Items()
	for i, s := range items {
		if s.Tick != i+1 {
			t.Fatalf("items[%d].Tick = %d, want %d", i, s.Tick, i+1)
		}
	}
}

func TestRingEviction(t *testing.T) {
	r := NewRing(3)
	for i := 1; i <= 5; i++ {
		r.Append(TickSample{Tick: i})
	}
	if r.Len() != 3 {
		t.Fatalf("length = %d, want 3", r.Len())
	}

	items := r.Items()
	want := []int{3, 4, 5}
	for i, s := range items {
		if s.Tick != want[i] {
			t.Fatalf("items[%d].Tick = %d, want %d", i, s.Tick, want[i])
		}
	}

	last, ok := r.Last()
	if !ok || last.Tick != 5 {
		t.Fatalf("last = %+v, want tick 5", last)
	}
}

func TestRingMinimumCapacity(t *testing.T) {
	r := NewRing(0)
	r.Append(TickSample{Tick: 1})
	r.Append(TickSample{Tick: 2})
	if r.Len() != 1 {
		t.Fatalf("length = %d, want 1", r.Len())
	}
	last, _ := r.Last()
	if last.Tick != 2 {
		t.Fatalf("last tick = %d, want 2", last.Tick)
	}
}

func TestRingItemsIsACopy(t *testing.T) {
	r := NewRing(2)
	r.Append(TickSample{Tick: 1})
	items := r.Items()
	items[0].Tick = 99

	again := r.Items()
	if again[0].Tick != 1 {
		t.Fatal("Items must return a fresh slice")
	}
}
