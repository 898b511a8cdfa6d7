package view

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"text/tabwriter"
)

// AddressRenderer writes an AddressListView. Rendering the same view twice
// produces the same output.
type AddressRenderer interface {
	Render(w io.Writer, v AddressListView) error
}

const addressListHTML = `{{if .PlaceholderVisible}}<p id="noAddress" class="text-muted">No saved addresses.</p>
{{end}}<div id="addressList"{{if not .ListVisible}} hidden{{end}}>
{{range .Cards}}<div class="address-item mb-2 p-2 border rounded" data-id="{{.ID}}">
<strong>{{.Title}}</strong>{{with .Phone}} ({{.}}){{end}}{{if .Default}} <span class="badge bg-primary">default</span>{{end}}<br>
{{range .Lines}}{{.}}<br>
{{end}}<button type="button" class="btn btn-sm btn-outline-secondary edit-address" data-id="{{.ID}}">Edit</button>
<button type="button" class="btn btn-sm btn-outline-danger delete-address" data-id="{{.ID}}">Delete</button>
</div>
{{end}}</div>
`

var addressListTmpl = template.Must(template.New("addressList").Parse(addressListHTML))

// HTMLRenderer renders the address section as page markup.
type HTMLRenderer struct{}

func (HTMLRenderer) Render(w io.Writer, v AddressListView) error {
	return addressListTmpl.Execute(w, v)
}

// TextRenderer renders the address section as a terminal table.
type TextRenderer struct{}

func (TextRenderer) Render(w io.Writer, v AddressListView) error {
	if v.PlaceholderVisible || !v.ListVisible {
		_, err := fmt.Fprintln(w, "No saved addresses.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRECIPIENT\tPHONE\tADDRESS\tDEFAULT")
	for _, c := range v.Cards {
		def := ""
		if c.Default {
			def = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Title, c.Phone, strings.Join(c.Lines, ", "), def)
	}
	return tw.Flush()
}
