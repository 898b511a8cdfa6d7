package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/storefront/internal/client/forms"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/view"
)

type addressPrompt struct {
	field    string
	prompt   string
	optional bool
}

var addressPrompts = []addressPrompt{
	{field: "recipientName", prompt: "Recipient name"},
	{field: "zipCode", prompt: "Zip code"},
	{field: "addressLine1", prompt: "Address"},
	{field: "addressLine2", prompt: "Address detail", optional: true},
	{field: "phoneNumber", prompt: "Phone number"},
}

func parseAddressID(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		return 0, usageError{usage}
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError{usage}
	}
	return id, nil
}

// Addresses fetches and prints the saved addresses. "addresses html"
// prints the page markup instead of a table.
func (a *App) Addresses(ctx context.Context, args []string) error {
	book := a.addresses
	if len(args) > 0 {
		if args[0] != "html" {
			return usageError{"addresses [html]"}
		}
		book = view.NewAddressBook(a.client, view.HTMLRenderer{}, a.out)
	}
	if err := book.Reload(ctx); err != nil {
		return a.reportError(ctx, err)
	}
	return nil
}

// AddressAdd prompts for a new address and saves it.
func (a *App) AddressAdd(ctx context.Context, _ []string) error {
	store := a.addressCreate.Store()
	for _, p := range addressPrompts {
		prompt := p.prompt
		if p.optional {
			prompt += " (optional)"
		}
		v, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		store.Set(p.field, v)
	}
	def, err := GetYesNo(a.reader, "Make this the default address?", a.out)
	if err != nil {
		return err
	}
	store.SetChecked(forms.CheckboxDefaultAddress, def)

	_, err = a.submit(ctx, a.addressCreate, nil)
	return err
}

// AddressEdit loads an address into the edit form, lets the user change
// each field (Enter keeps it) and saves it.
func (a *App) AddressEdit(ctx context.Context, args []string) error {
	id, err := parseAddressID(args, "address-edit <id>")
	if err != nil {
		return err
	}

	addr, ok := a.addresses.Find(id)
	if !ok {
		if err := a.addresses.Reload(ctx); err != nil {
			return a.reportError(ctx, err)
		}
		if addr, ok = a.addresses.Find(id); !ok {
			a.ui.Notify("No address with id " + args[0] + ".")
			return errReported
		}
	}

	store := a.addressUpdate.Store()
	forms.PrefillAddressEdit(store, addr)
	for _, p := range addressPrompts {
		v, err := GetWithDefault(a.reader, p.prompt, store.Value(p.field), a.out)
		if err != nil {
			return err
		}
		store.Set(p.field, v)
	}
	def, err := GetYesNo(a.reader, defaultQuestion(addr), a.out)
	if err != nil {
		return err
	}
	store.SetChecked(forms.CheckboxDefaultAddress, def)

	_, err = a.submit(ctx, a.addressUpdate, nil)
	return err
}

func defaultQuestion(addr models.Address) string {
	if addr.Default {
		return "Keep as the default address?"
	}
	return "Make this the default address?"
}

// AddressDelete deletes an address after confirmation.
func (a *App) AddressDelete(ctx context.Context, args []string) error {
	id, err := parseAddressID(args, "address-delete <id>")
	if err != nil {
		return err
	}
	_, err = a.submit(ctx, a.addressDelete, map[string]string{"id": strconv.FormatInt(id, 10)})
	return err
}
