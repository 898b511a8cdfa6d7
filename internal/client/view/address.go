package view

import (
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// AddressCard is one rendered address.
type AddressCard struct {
	ID      int64
	Title   string
	Phone   string
	Lines   []string
	Default bool
	// EditAction and DeleteAction are the commands bound to the card's
	// buttons.
	EditAction   string
	DeleteAction string
}

// AddressListView is everything the address section shows.
type AddressListView struct {
	PlaceholderVisible bool
	ListVisible        bool
	Cards              []AddressCard
}

// BuildAddressList maps the fetched array onto the view, one card per
// address in array order. nil and empty both show the placeholder.
func BuildAddressList(addrs []models.Address) AddressListView {
	if len(addrs) == 0 {
		return AddressListView{PlaceholderVisible: true}
	}

	cards := make([]AddressCard, 0, len(addrs))
	for _, a := range addrs {
		cards = append(cards, AddressCard{
			ID:           a.ID,
			Title:        a.RecipientName,
			Phone:        a.PhoneNumber,
			Lines:        addressLines(a),
			Default:      a.Default,
			EditAction:   fmt.Sprintf("address-edit %d", a.ID),
			DeleteAction: fmt.Sprintf("address-delete %d", a.ID),
		})
	}
	return AddressListView{ListVisible: true, Cards: cards}
}

func addressLines(a models.Address) []string {
	lines := a.Lines()
	// The phone number is shown next to the title.
	if n := len(lines); n > 0 && a.PhoneNumber != "" && lines[n-1] == a.PhoneNumber {
		lines = lines[:n-1]
	}
	return lines
}
