package session

import "testing"

func TestCartAddMergesLines(t *testing.T) {
	var c Cart
	c.Add(1, "Tacos", 10)
	c.Add(1, "Tacos", 10)

	if len(c.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(c.Lines))
	}
	if c.Lines[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", c.Lines[0].Quantity)
	}

	c.Add(2, "Agua", 5)
	if len(c.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(c.Lines))
	}
	if got := c.Subtotal(); got != 25 {
		t.Errorf("Subtotal() = %v, want 25", got)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore()

	cart := s.Get("t1")
	if !cart.Empty() {
		t.Fatal("unknown token should yield an empty cart")
	}

	cart.Add(1, "Tacos", 10)
	s.Put("t1", cart)

	got := s.Get("t1")
	if len(got.Lines) != 1 || got.Lines[0].Quantity != 1 {
		t.Fatalf("unexpected cart after Put: %+v", got)
	}

	// Mutating a returned copy must not leak into the store.
	got.Add(1, "Tacos", 10)
	if again := s.Get("t1"); again.Lines[0].Quantity != 1 {
		t.Errorf("store mutated through a returned copy: %+v", again)
	}

	s.Delete("t1")
	if !s.Get("t1").Empty() {
		t.Error("cart survived Delete")
	}
}

func TestNewToken(t *testing.T) {
	a, err := NewToken()
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewToken()
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 32 {
		t.Errorf("token length = %d, want 32", len(a))
	}
	if a == b {
		t.Error("two tokens should not collide")
	}
}
