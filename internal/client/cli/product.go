package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/storefront/internal/client/attachments"
	"github.com/dmitrijs2005/storefront/internal/client/forms"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/upload"
)

// Thumbnail uploads a file and makes it the product thumbnail.
func (a *App) Thumbnail(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError{"thumb <path>"}
	}
	f, err := models.FileFromPath(args[0])
	if err != nil {
		return err
	}
	res := a.sequencer.UploadThumbnail(ctx, f)
	if !res.OK() {
		return errReported
	}
	fmt.Fprintf(a.out, "thumbnail: %s\n", res.Attachment.FileKey)
	return nil
}

func (a *App) ThumbnailClear(_ context.Context, _ []string) error {
	a.sequencer.List().ClearThumbnail()
	return nil
}

// Image uploads one or more content images. With "@pos" the first file
// goes into that slot; otherwise files fill the trailing empty slot in
// order.
func (a *App) Image(ctx context.Context, args []string) error {
	const usage = "image [@pos] <path>..."
	list := a.sequencer.List()

	slotID := ""
	if len(args) > 0 && strings.HasPrefix(args[0], "@") {
		s, err := slotAt(list, strings.TrimPrefix(args[0], "@"), usage)
		if err != nil {
			return err
		}
		slotID = s.ID
		args = args[1:]
	}
	if len(args) == 0 {
		return usageError{usage}
	}

	files := make([]models.UploadFile, 0, len(args))
	for _, p := range args {
		f, err := models.FileFromPath(p)
		if err != nil {
			return err
		}
		files = append(files, f)
	}

	var results []upload.Result
	if len(files) == 1 {
		if slotID == "" {
			slotID = list.Last().ID
		}
		results = []upload.Result{a.sequencer.UploadContent(ctx, slotID, files[0])}
	} else {
		pending := make([]models.PendingUpload, len(files))
		for i, f := range files {
			pending[i] = models.PendingUpload{File: f}
		}
		pending[0].SlotID = slotID
		results = a.sequencer.UploadContentBatch(ctx, pending)
	}

	failed := false
	for _, r := range results {
		if !r.OK() {
			failed = true
			continue
		}
		fmt.Fprintf(a.out, "uploaded %s as %s\n", r.File, r.Attachment.FileKey)
	}
	if failed {
		return errReported
	}
	return nil
}

func slotAt(list *attachments.List, pos, usage string) (attachments.Slot, error) {
	n, err := strconv.Atoi(pos)
	if err != nil {
		return attachments.Slot{}, usageError{usage}
	}
	s, ok := list.ByPosition(n)
	if !ok {
		return attachments.Slot{}, fmt.Errorf("no image at position %d", n)
	}
	return s, nil
}

// ImageRemove removes the slot at a position.
func (a *App) ImageRemove(_ context.Context, args []string) error {
	const usage = "image-rm <pos>"
	if len(args) != 1 {
		return usageError{usage}
	}
	list := a.sequencer.List()
	s, err := slotAt(list, args[0], usage)
	if err != nil {
		return err
	}
	return list.Remove(s.ID)
}

func (a *App) moveImage(usage string, up bool) func(context.Context, []string) error {
	return func(_ context.Context, args []string) error {
		if len(args) != 1 {
			return usageError{usage}
		}
		list := a.sequencer.List()
		s, err := slotAt(list, args[0], usage)
		if err != nil {
			return err
		}
		dir := attachments.Down
		if up {
			dir = attachments.Up
		}
		return list.Move(s.ID, dir)
	}
}

// Images prints the draft's thumbnail and content slots.
func (a *App) Images(_ context.Context, _ []string) error {
	list := a.sequencer.List()

	if th, _, ok := list.Thumbnail(); ok {
		fmt.Fprintf(a.out, "thumbnail: %s (%s)\n", th.FileName, th.FileKey)
	} else {
		fmt.Fprintln(a.out, "thumbnail: none")
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tFILE\tKEY")
	for _, s := range list.Slots() {
		if s.Empty() {
			fmt.Fprintf(tw, "%d\t(empty)\t\n", s.Position)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Position, s.Attachment.FileName, s.Attachment.FileKey)
	}
	return tw.Flush()
}

// ProductSubmit prompts for the product details and registers the draft.
func (a *App) ProductSubmit(ctx context.Context, _ []string) error {
	store := a.productCreate.Store()
	prompts := []struct{ field, prompt string }{
		{"title", "Title"},
		{"description", "Description"},
		{"price", "Price"},
		{"stock", "Stock"},
	}
	for _, p := range prompts {
		v, err := GetWithDefault(a.reader, p.prompt, store.Value(p.field), a.out)
		if err != nil {
			return err
		}
		store.Set(p.field, v)
	}
	_, err := a.submit(ctx, a.productCreate, nil)
	return err
}

// ProductClear discards the draft's images and fields.
func (a *App) ProductClear(_ context.Context, _ []string) error {
	a.sequencer.List().Clear()
	a.productCreate.Store().Reset()
	a.ui.Notify("Draft cleared.")
	return nil
}

func cartArgs(args []string, usage string) (string, string, error) {
	switch len(args) {
	case 1:
		return args[0], "1", nil
	case 2:
		return args[0], args[1], nil
	}
	return "", "", usageError{usage}
}

// Cart adds a product to the cart.
func (a *App) Cart(ctx context.Context, args []string) error {
	id, qty, err := cartArgs(args, "cart <productId> [quantity]")
	if err != nil {
		return err
	}
	_, err = a.submit(ctx, a.addToCart, map[string]string{"productId": id, "quantity": qty})
	return err
}

// Order moves to the order page for a product.
func (a *App) Order(_ context.Context, args []string) error {
	const usage = "order <productId> [quantity]"
	id, qty, err := cartArgs(args, usage)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(qty)
	if err != nil || n < 1 {
		return usageError{usage}
	}
	a.ui.Navigate(forms.ProductOrderURL(id, n))
	return nil
}
