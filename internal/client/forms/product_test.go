package forms

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/attachments"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draft(t *testing.T) *attachments.List {
	t.Helper()
	list := attachments.New()
	first := list.Last()
	require.NoError(t, list.Bind(first.ID, models.Attachment{FileName: "a.png", FileKey: "products/a.png"}, ""))
	second := list.Append()
	require.NoError(t, list.Bind(second.ID, models.Attachment{FileName: "b.png", FileKey: "products/b.png"}, ""))
	list.Append()
	list.SetThumbnail(models.Attachment{FileName: "t.png", FileKey: "products/t.png"}, "")
	return list
}

func TestProductRegisterForm(t *testing.T) {
	b := newBackend(t)
	b.on("POST /registerProduct", status(http.StatusOK, `{"message":"ok"}`))
	list := draft(t)

	c, ui, _ := newForm(ProductRegisterForm(b.client, list), map[string]string{
		"title": "Mug", "description": "Blue", "price": "12.5", "stock": "3",
	})
	out, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Succeeded, out.State)
	assert.Equal(t, []string{"/"}, ui.Navigations)

	var got models.Product
	require.NoError(t, json.Unmarshal([]byte(b.Calls()[0].body), &got))
	want := models.Product{
		Title:          "Mug",
		Description:    "Blue",
		Price:          12.5,
		Stock:          3,
		ThumbnailImage: &models.Attachment{FileName: "t.png", FileKey: "products/t.png"},
		ContentImages: []models.Attachment{
			{FileName: "a.png", FileKey: "products/a.png"},
			{FileName: "b.png", FileKey: "products/b.png"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 1, list.Len())
	_, _, ok := list.Thumbnail()
	assert.False(t, ok)
}

func TestProductRegisterForm_Failure(t *testing.T) {
	b := newBackend(t)
	b.on("POST /registerProduct", status(http.StatusBadRequest, `{"message":"title too long"}`))
	list := draft(t)

	c, ui, _ := newForm(ProductRegisterForm(b.client, list), map[string]string{"title": "Mug", "price": "1", "stock": "0"})
	out, _ := c.Submit(context.Background())
	assert.Equal(t, FailedResponse, out.State)
	assert.Equal(t, []string{common.MsgProductFailed}, ui.Notices)
	assert.Equal(t, 3, list.Len(), "a rejected product keeps the draft")
}

func TestProductRegisterForm_Validation(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		msg    string
	}{
		{"no title", map[string]string{"price": "1", "stock": "1"}, common.MsgProductTitleNeeded},
		{"bad price", map[string]string{"title": "x", "price": "abc", "stock": "1"}, common.MsgProductPriceBad},
		{"negative stock", map[string]string{"title": "x", "price": "1", "stock": "-1"}, common.MsgProductStockBad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBackend(t)
			c, ui, _ := newForm(ProductRegisterForm(b.client, attachments.New()), tt.values)
			out, _ := c.Submit(context.Background())
			assert.Equal(t, FailedValidation, out.State)
			assert.Equal(t, []string{tt.msg}, ui.Notices)
			assert.Empty(t, b.Calls())
		})
	}
}

func TestAddToCartForm(t *testing.T) {
	b := newBackend(t)
	c, ui, _ := newForm(AddToCartForm(b.client), map[string]string{"productId": "p-1", "quantity": "2"})

	out, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Succeeded, out.State)
	assert.Equal(t, []string{common.MsgCartAdded}, ui.Notices)
	assert.JSONEq(t, `{"productId":"p-1","quantity":2}`, b.Calls()[0].body)

	c, ui, _ = newForm(AddToCartForm(b.client), map[string]string{"productId": "p-1", "quantity": "0"})
	out, _ = c.Submit(context.Background())
	assert.Equal(t, FailedValidation, out.State)
	assert.Equal(t, []string{common.MsgCartQuantityBad}, ui.Notices)
}

func TestProductOrderURL(t *testing.T) {
	assert.Equal(t, "/productOrder?productId=p+1&quantity=3", ProductOrderURL("p 1", 3))
}
