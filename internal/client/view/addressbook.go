package view

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

type addressLister interface {
	ListAddresses(ctx context.Context) ([]models.Address, error)
}

// AddressBook keeps the rendered address section in sync with the backend.
type AddressBook struct {
	client   addressLister
	renderer AddressRenderer
	out      io.Writer

	mu        sync.Mutex
	addresses []models.Address
	rendered  string
}

// NewAddressBook renders with r. Every successful reload is also written to
// out when it is non-nil.
func NewAddressBook(client addressLister, r AddressRenderer, out io.Writer) *AddressBook {
	return &AddressBook{client: client, renderer: r, out: out}
}

// Reload fetches the list and re-renders it. When the fetch fails the
// previous rendering stays as it was and the error is returned.
func (b *AddressBook) Reload(ctx context.Context) error {
	addrs, err := b.client.ListAddresses(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := b.renderer.Render(&buf, BuildAddressList(addrs)); err != nil {
		return err
	}

	b.mu.Lock()
	b.addresses = addrs
	b.rendered = buf.String()
	b.mu.Unlock()

	if b.out != nil {
		_, _ = io.WriteString(b.out, buf.String())
	}
	return nil
}

// Rendered returns the current rendering.
func (b *AddressBook) Rendered() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rendered
}

// Find returns a displayed address by id.
func (b *AddressBook) Find(id int64) (models.Address, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, a := range b.addresses {
		if a.ID == id {
			return a, true
		}
	}
	return models.Address{}, false
}
