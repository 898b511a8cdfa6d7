package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/common"
)

// command is one REPL verb.
type command struct {
	name    string
	aliases []string
	usage   string
	help    string
	run     func(ctx context.Context, args []string) error
}

// usageError asks the REPL to print the command's usage line.
type usageError struct{ usage string }

func (e usageError) Error() string { return "usage: " + e.usage }

// errReported marks a failure the UI has already shown to the user.
var errReported = errors.New("already reported")

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to the matching entry of cmds. Unknown commands are reported
// back to the user. The loop exits on EOF or when the user types "exit" or
// "quit".
//
// Handlers report their own outcome through the UI; an error returned here
// is something the user has not seen yet, such as bad arguments.
func runREPL(ctx context.Context, cmds []command, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	index := indexCommands(cmds)

	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "sf %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			printHelp(out, cmds)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			dispatch(ctx, index, parts[0], parts[1:], out)
		}
	}
}

func indexCommands(cmds []command) map[string]command {
	index := make(map[string]command, len(cmds))
	for _, c := range cmds {
		index[c.name] = c
		for _, a := range c.aliases {
			index[a] = c
		}
	}
	return index
}

// dispatch runs one command and prints any error the handler did not show.
// It reports false for an unknown command or a failed run.
func dispatch(ctx context.Context, index map[string]command, name string, args []string, out io.Writer) bool {
	c, ok := index[name]
	if !ok {
		fmt.Fprintln(out, "Unknown command:", name)
		return false
	}

	err := c.run(ctx, args)
	if err == nil {
		return true
	}

	var ue usageError
	switch {
	case errors.Is(err, errReported):
	case errors.As(err, &ue):
		fmt.Fprintln(out, ue.Error())
	case errors.Is(err, common.ErrCanceled):
		fmt.Fprintln(out, "canceled")
	default:
		fmt.Fprintln(out, "error:", err)
	}
	return false
}

func printHelp(out io.Writer, cmds []command) {
	fmt.Fprintln(out, "Available commands:")
	for _, c := range cmds {
		fmt.Fprintf(out, "  %-32s %s\n", c.usage, c.help)
	}
	fmt.Fprintf(out, "  %-32s %s\n", "help", "show this list")
	fmt.Fprintf(out, "  %-32s %s\n", "exit | quit", "leave the program")
}

func (a *App) commands() []command {
	return []command{
		{name: "login", usage: "login [email]", help: "sign in", run: a.Login},
		{name: "logout", usage: "logout", help: "sign out and forget the saved session", run: a.Logout},
		{name: "whoami", usage: "whoami", help: "show the signed-in account", run: a.WhoAmI},
		{name: "signup", aliases: []string{"register"}, usage: "signup", help: "create an account", run: a.Signup},
		{name: "forgot", usage: "forgot [email]", help: "mail a new password to an account", run: a.ForgotPassword},
		{name: "reset-password", usage: "reset-password [token]", help: "set a new password from a mailed link", run: a.ResetPassword},
		{name: "profile-reset", usage: "profile-reset", help: "mail a new password to yourself", run: a.ProfileReset},

		{name: "addresses", aliases: []string{"addr"}, usage: "addresses [html]", help: "list saved addresses", run: a.Addresses},
		{name: "address-add", usage: "address-add", help: "save a new address", run: a.AddressAdd},
		{name: "address-edit", usage: "address-edit <id>", help: "edit an address", run: a.AddressEdit},
		{name: "address-delete", usage: "address-delete <id>", help: "delete an address", run: a.AddressDelete},

		{name: "thumb", usage: "thumb <path>", help: "upload the product thumbnail", run: a.Thumbnail},
		{name: "thumb-clear", usage: "thumb-clear", help: "remove the thumbnail", run: a.ThumbnailClear},
		{name: "image", usage: "image [@pos] <path>...", help: "upload content images", run: a.Image},
		{name: "image-rm", usage: "image-rm <pos>", help: "remove a content image", run: a.ImageRemove},
		{name: "image-up", usage: "image-up <pos>", help: "move a content image up", run: a.moveImage("image-up <pos>", true)},
		{name: "image-down", usage: "image-down <pos>", help: "move a content image down", run: a.moveImage("image-down <pos>", false)},
		{name: "images", usage: "images", help: "show the product draft images", run: a.Images},
		{name: "product-submit", usage: "product-submit", help: "register the product draft", run: a.ProductSubmit},
		{name: "product-clear", usage: "product-clear", help: "discard the product draft", run: a.ProductClear},

		{name: "cart", usage: "cart <productId> [quantity]", help: "add a product to the cart", run: a.Cart},
		{name: "order", usage: "order <productId> [quantity]", help: "go to the order page", run: a.Order},
	}
}
