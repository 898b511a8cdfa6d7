package forms

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/view"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// Modal dialogs the address forms live in.
const (
	ModalAddressRegister = "addressRegisterModal"
	ModalAddressEdit     = "addressEditModal"
)

var addressFields = []string{"recipientName", "zipCode", "addressLine1", "addressLine2", "phoneNumber"}

// CheckboxDefaultAddress marks the address as the default one.
const CheckboxDefaultAddress = "defaultAddress"

func validateAddress(f Fields) error {
	return required(f, common.MsgAddressFieldMissing, "recipientName", "zipCode", "addressLine1", "phoneNumber")
}

func addressInput(f Fields) models.AddressInput {
	return models.AddressInput{
		RecipientName: f.Trimmed("recipientName"),
		ZipCode:       f.Trimmed("zipCode"),
		AddressLine1:  f.Trimmed("addressLine1"),
		AddressLine2:  f.Trimmed("addressLine2"),
		PhoneNumber:   f.Trimmed("phoneNumber"),
		Default:       f.Checked(CheckboxDefaultAddress),
	}
}

func parseID(f Fields) (int64, error) {
	id, err := strconv.ParseInt(f.Trimmed("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &ValidationError{Field: "id", Message: common.MsgGenericError}
	}
	return id, nil
}

func refresh(r Reloader) func(context.Context) error {
	if r == nil {
		return nil
	}
	return r.Reload
}

// AddressCreateForm registers an address, closes the dialog, clears the
// form and refreshes the list.
func AddressCreateForm(b Backend, list Reloader) Spec {
	return Spec{
		Name:       "address-create",
		Fields:     addressFields,
		Checkboxes: []string{CheckboxDefaultAddress},
		Validate:   validateAddress,
		Submit: func(ctx context.Context, f Fields) (Success, error) {
			msg, err := b.CreateAddress(ctx, addressInput(f))
			if err != nil {
				return Success{}, err
			}
			return Success{
				Message:    msg,
				CloseModal: ModalAddressRegister,
				ResetForm:  true,
				Refresh:    refresh(list),
			}, nil
		},
	}
}

// AddressUpdateForm saves an edited address, closes the dialog and
// refreshes the list.
func AddressUpdateForm(b Backend, list Reloader) Spec {
	return Spec{
		Name:       "address-update",
		Fields:     append([]string{"id"}, addressFields...),
		Checkboxes: []string{CheckboxDefaultAddress},
		Validate: func(f Fields) error {
			if _, err := parseID(f); err != nil {
				return err
			}
			return validateAddress(f)
		},
		Submit: func(ctx context.Context, f Fields) (Success, error) {
			id, _ := parseID(f)
			msg, err := b.UpdateAddress(ctx, models.AddressUpdate{ID: id, AddressInput: addressInput(f)})
			if err != nil {
				return Success{}, err
			}
			return Success{Message: msg, CloseModal: ModalAddressEdit, Refresh: refresh(list)}, nil
		},
	}
}

// AddressDeleteAction deletes an address after confirmation and refreshes
// the list. A rejected delete leaves the list as rendered.
func AddressDeleteAction(b Backend, list Reloader) Spec {
	return Spec{
		Name:   "address-delete",
		Fields: []string{"id"},
		Validate: func(f Fields) error {
			_, err := parseID(f)
			return err
		},
		Confirm: common.MsgAddressDeleteConfirm,
		Submit: func(ctx context.Context, f Fields) (Success, error) {
			id, _ := parseID(f)
			msg, err := b.DeleteAddress(ctx, id)
			if err != nil {
				return Success{}, err
			}
			return Success{Message: msg, Refresh: refresh(list)}, nil
		},
	}
}

// PrefillAddressEdit loads an address into the edit form.
func PrefillAddressEdit(store view.FieldStore, a models.Address) {
	store.Reset()
	store.Set("id", strconv.FormatInt(a.ID, 10))
	store.Set("recipientName", a.RecipientName)
	store.Set("zipCode", a.ZipCode)
	store.Set("addressLine1", a.AddressLine1)
	store.Set("addressLine2", a.AddressLine2)
	store.Set("phoneNumber", a.PhoneNumber)
	store.SetChecked(CheckboxDefaultAddress, a.Default)
}

// PostcodeResult is what the postcode lookup widget reports.
type PostcodeResult struct {
	Zonecode     string
	RoadAddress  string
	JibunAddress string
}

// ApplyPostcode fills the zip code and first address line from a lookup,
// preferring the road address.
func ApplyPostcode(store view.FieldStore, r PostcodeResult) {
	store.Set("zipCode", r.Zonecode)
	line := r.RoadAddress
	if line == "" {
		line = r.JibunAddress
	}
	store.Set("addressLine1", line)
}
