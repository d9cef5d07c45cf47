// internal/domain/cart/entity.go
package cart

import (
	"sort"
	"strconv"
)

// Cart maps a product id (decimal string) to the quantity held in the
// session. Quantities are always >= 1; removing an entry deletes the key.
type Cart map[string]int

// New returns an empty cart
func New() Cart {
	return Cart{}
}

func key(productID uint) string {
	return strconv.FormatUint(uint64(productID), 10)
}

// Add increments the quantity of a product by one
func (c Cart) Add(productID uint) {
	c[key(productID)]++
}

// Remove deletes the entry for a product and reports whether it existed
func (c Cart) Remove(productID uint) bool {
	k := key(productID)
	if _, ok := c[k]; !ok {
		return false
	}
	delete(c, k)
	return true
}

// Quantity returns the quantity held for a product
func (c Cart) Quantity(productID uint) int {
	return c[key(productID)]
}

// TotalQuantity returns the number of pieces in the cart
func (c Cart) TotalQuantity() int {
	total := 0
	for _, qty := range c {
		if qty > 0 {
			total += qty
		}
	}
	return total
}

// Len returns the number of distinct entries
func (c Cart) Len() int {
	return len(c)
}

// IsEmpty reports whether the cart holds nothing
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// Entry is a parsed cart entry
type Entry struct {
	ProductID uint
	Quantity  int
}

// Entries returns the well-formed entries in ascending product id order.
// Keys that do not parse as ids and non-positive quantities are skipped.
func (c Cart) Entries() []Entry {
	entries := make([]Entry, 0, len(c))
	for k, qty := range c {
		id, err := strconv.ParseUint(k, 10, 64)
		if err != nil || id == 0 || qty <= 0 {
			continue
		}
		entries = append(entries, Entry{ProductID: uint(id), Quantity: qty})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ProductID < entries[j].ProductID
	})
	return entries
}
