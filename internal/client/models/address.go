package models

import (
	"strings"

	"github.com/dmitrijs2005/storefront/internal/timex"
)

// Address is a shipping address as the address endpoints return it.
//
// At most one address in a user's list has Default set; the server enforces
// this and the client only renders it.
type Address struct {
	ID            int64               `json:"id"`
	RecipientName string              `json:"recipientName"`
	ZipCode       string              `json:"zipCode"`
	AddressLine1  string              `json:"addressLine1"`
	AddressLine2  string              `json:"addressLine2"`
	PhoneNumber   string              `json:"phoneNumber"`
	Default       bool                `json:"default"`
	CreateAt      timex.LocalDateTime `json:"createAt"`
}

// AddressInput is the create payload: an Address without id.
type AddressInput struct {
	RecipientName string `json:"recipientName"`
	ZipCode       string `json:"zipCode"`
	AddressLine1  string `json:"addressLine1"`
	AddressLine2  string `json:"addressLine2"`
	PhoneNumber   string `json:"phoneNumber"`
	Default       bool   `json:"default"`
}

// AddressUpdate is the update payload: the editable fields plus id.
type AddressUpdate struct {
	ID int64 `json:"id"`
	AddressInput
}

// AddressID is the delete payload.
type AddressID struct {
	ID int64 `json:"id"`
}

// Input returns the editable part of a.
func (a Address) Input() AddressInput {
	return AddressInput{
		RecipientName: a.RecipientName,
		ZipCode:       a.ZipCode,
		AddressLine1:  a.AddressLine1,
		AddressLine2:  a.AddressLine2,
		PhoneNumber:   a.PhoneNumber,
		Default:       a.Default,
	}
}

// Lines returns the printable address lines, skipping blanks.
func (a Address) Lines() []string {
	var out []string
	first := strings.TrimSpace(strings.Join([]string{
		bracket(a.ZipCode), a.AddressLine1,
	}, " "))
	if first != "" {
		out = append(out, first)
	}
	if s := strings.TrimSpace(a.AddressLine2); s != "" {
		out = append(out, s)
	}
	if s := strings.TrimSpace(a.PhoneNumber); s != "" {
		out = append(out, s)
	}
	return out
}

func bracket(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}
