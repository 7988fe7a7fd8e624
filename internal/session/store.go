// Package session holds the per-browser cart. Carts live in memory only and
// are keyed by an opaque random token carried in a cookie; nothing here
// touches the database — an order exists only once checkout commits it.
package session

import (
	"crypto/rand"
	"fmt"
	"sync"
)

type CartLine struct {
	ItemID   int64   `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add puts one unit of the item into the cart, merging with an existing line
// for the same item instead of duplicating it. Name and price are snapshots
// taken at add time.
func (c *Cart) Add(itemID int64, name string, price float64) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{ItemID: itemID, Name: name, Price: price, Quantity: 1})
}

func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.Lines {
		sum += l.Price * float64(l.Quantity)
	}
	return sum
}

func (c *Cart) Empty() bool { return len(c.Lines) == 0 }

type Store struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]Cart)}
}

// Get returns a copy of the cart for token; an unknown token yields an empty
// cart. Callers mutate the copy and Put it back.
func (s *Store) Get(token string) *Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart := s.carts[token]
	lines := make([]CartLine, len(cart.Lines))
	copy(lines, cart.Lines)
	return &Cart{Lines: lines}
}

func (s *Store) Put(token string, cart *Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]CartLine, len(cart.Lines))
	copy(lines, cart.Lines)
	s.carts[token] = Cart{Lines: lines}
}

func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, token)
}

func NewToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", b), nil
}
