package bank

import "sync/atomic"

// Catalog publishes the currently active Bank to concurrent readers.
// Reload builds and validates a replacement off to the side, then swaps
// the pointer in one step, so in-flight reads never observe a
// half-updated bank. A failed reload leaves the active bank serving.
type Catalog struct {
	current atomic.Pointer[Bank]
}

// NewCatalog creates a catalog serving the given bank.
func NewCatalog(initial *Bank) *Catalog {
	c := &Catalog{}
	c.current.Store(initial)
	return c
}

// Current returns the active bank. The returned bank is immutable and
// stays valid even if a reload swaps in a replacement afterwards.
func (c *Catalog) Current() *Bank {
	return c.current.Load()
}

// Reload validates the definitions and atomically replaces the active
// bank. On error nothing changes. Reloading identical definitions is
// idempotent: the replacement bank is equivalent to the old one.
func (c *Catalog) Reload(defs []Definition) error {
	replacement, err := Load(defs)
	if err != nil {
		return err
	}
	c.current.Store(replacement)
	return nil
}
