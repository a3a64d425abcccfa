package cache

import (
	"sync"
	"testing"
)

func TestCache_GetAdd(t *testing.T) {
	c := New[int, string](2)

	if _, ok := c.Get(1); ok {
		t.Fatal("Get on empty cache should miss")
	}
	if got := c.Add(1, "one"); got != "one" {
		t.Errorf("Add(1) = %q, want %q", got, "one")
	}
	if got, ok := c.Get(1); !ok || got != "one" {
		t.Errorf("Get(1) = %q, %v, want one, true", got, ok)
	}

	// Existing values win.
	if got := c.Add(1, "uno"); got != "one" {
		t.Errorf("Add(1) again = %q, want the first value", got)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Len != 1 || stats.Capacity != 2 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestCache_Eviction(t *testing.T) {
	tests := []struct {
		name    string
		touch   int
		evicted int
		kept    int
	}{
		{"oldest evicted", 0, 1, 2},
		{"touched entry survives", 1, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New[int, int](2)
			c.Add(1, 10)
			c.Add(2, 20)
			if tt.touch != 0 {
				c.Get(tt.touch)
			}
			c.Add(3, 30)

			if c.Len() != 2 {
				t.Errorf("Len() = %d, want 2", c.Len())
			}
			if _, ok := c.Get(tt.evicted); ok {
				t.Errorf("key %d should have been evicted", tt.evicted)
			}
			if _, ok := c.Get(tt.kept); !ok {
				t.Errorf("key %d should be cached", tt.kept)
			}
			if _, ok := c.Get(3); !ok {
				t.Error("key 3 should be cached")
			}
			if got := c.Stats().Evictions; got != 1 {
				t.Errorf("Evictions = %d, want 1", got)
			}
		})
	}
}

func TestCache_DeleteClear(t *testing.T) {
	c := New[string, int](0)
	if c.Capacity() != 1 {
		t.Errorf("Capacity() = %d, want 1", c.Capacity())
	}

	c = New[string, int](4)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	if !c.Delete("b") {
		t.Error("Delete(b) = false, want true")
	}
	if c.Delete("b") {
		t.Error("second Delete(b) = true, want false")
	}
	// The list stays consistent after removing a middle entry.
	c.Add("d", 4)
	c.Add("e", 5)
	c.Add("f", 6)
	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("a should have been evicted")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	c.Add("g", 7)
	if got, ok := c.Get("g"); !ok || got != 7 {
		t.Errorf("Get(g) after Clear = %d, %v", got, ok)
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[int, int](8)
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := range 200 {
				k := (i + j) % 12
				if v, ok := c.Get(k); ok && v != k*k {
					t.Errorf("Get(%d) = %d, want %d", k, v, k*k)
				}
				c.Add(k, k*k)
			}
		}(i)
	}
	wg.Wait()
	if c.Len() > 8 {
		t.Errorf("Len() = %d exceeds capacity 8", c.Len())
	}
}
