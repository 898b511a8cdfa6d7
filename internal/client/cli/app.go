package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/attachments"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/forms"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/client/upload"
	"github.com/dmitrijs2005/storefront/internal/client/view"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// timeNow is a test seam for time.Now.
var timeNow = time.Now

// App is one interactive session against a storefront backend.
type App struct {
	config    *config.Config
	log       logging.Logger
	client    *api.Client
	session   *session.Store
	sequencer *upload.Sequencer
	addresses *view.AddressBook
	ui        *ConsoleUI
	reader    *bufio.Reader
	out       io.Writer

	login         *forms.Controller
	signup        *forms.Controller
	forgot        *forms.Controller
	resetPassword *forms.Controller
	profileReset  *forms.Controller
	addressCreate *forms.Controller
	addressUpdate *forms.Controller
	addressDelete *forms.Controller
	productCreate *forms.Controller
	addToCart     *forms.Controller
}

// NewApp opens the session store, restores the saved cookies and builds
// every controller. Close releases the store.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	store, err := session.Open(ctx, c.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	jar, err := api.NewCookieJar()
	if err != nil {
		store.Close()
		return nil, err
	}
	client := api.NewClient(c.BaseURL, jar, c.RequestTimeout, api.WithLogger(log))

	n, err := store.Restore(ctx, jar, client.BaseURL())
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}
	log.Debug(ctx, "session restored", "cookies", n)

	presigner, err := newPresigner(ctx, c, client)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("presigner: %w", err)
	}

	reader := bufio.NewReader(in)
	ui := NewConsoleUI(reader, out)
	transfer := upload.NetTransferer{Client: &http.Client{Timeout: c.UploadTimeout}}
	seq := upload.NewSequencer(presigner, transfer, attachments.New(), ui, log, c.UploadConcurrency)

	return newApp(c, log, client, store, seq, reader, ui, out), nil
}

func newApp(c *config.Config, log logging.Logger, client *api.Client, store *session.Store, seq *upload.Sequencer, reader *bufio.Reader, ui *ConsoleUI, out io.Writer) *App {
	a := &App{
		config:    c,
		log:       log,
		client:    client,
		session:   store,
		sequencer: seq,
		addresses: view.NewAddressBook(client, view.TextRenderer{}, out),
		ui:        ui,
		reader:    reader,
		out:       out,
	}

	ctl := func(spec forms.Spec) *forms.Controller {
		return forms.NewController(spec, ui, view.NewMapFieldStore(nil), log)
	}
	a.login = ctl(forms.LoginForm(client))
	a.signup = ctl(forms.SignupForm(client))
	a.forgot = ctl(forms.ForgotPasswordForm(client))
	a.resetPassword = ctl(forms.ResetPasswordForm(client))
	a.profileReset = ctl(forms.ProfilePasswordResetForm(client))
	a.addressCreate = ctl(forms.AddressCreateForm(client, a.addresses))
	a.addressUpdate = ctl(forms.AddressUpdateForm(client, a.addresses))
	a.addressDelete = ctl(forms.AddressDeleteAction(client, a.addresses))
	a.productCreate = ctl(forms.ProductRegisterForm(client, seq.List()))
	a.addToCart = ctl(forms.AddToCartForm(client))
	return a
}

// newPresigner picks where upload URLs come from.
func newPresigner(ctx context.Context, c *config.Config, client *api.Client) (upload.Presigner, error) {
	switch c.PresignMode {
	case config.PresignS3:
		p, err := upload.NewS3Presigner(ctx, c.Storage)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.PresignMinio:
		p, err := upload.NewMinioPresigner(c.Storage)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return upload.NewOriginPresigner(client, c.PresignMethod), nil
	}
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Storefront CLI (type 'help' for commands)")
	if info, err := session.Current(a.client.Jar(), a.client.BaseURL()); err == nil {
		fmt.Fprintf(a.out, "Signed in as %s\n", info.Email)
	}
	runREPL(ctx, a.commands(), a.status, a.reader, a.out)
}

// Exec runs a single command non-interactively, as in
// "storefront whoami". It reports whether the command succeeded.
func (a *App) Exec(ctx context.Context, args []string) bool {
	if len(args) == 0 {
		return false
	}
	if args[0] == "help" {
		printHelp(a.out, a.commands())
		return true
	}
	return dispatch(ctx, indexCommands(a.commands()), args[0], args[1:], a.out)
}

// Close releases the session store.
func (a *App) Close() error {
	return a.session.Close()
}

func (a *App) status() string {
	s := a.ui.Page()
	if info, err := session.Current(a.client.Jar(), a.client.BaseURL()); err == nil {
		s = info.Email + " " + s
	}
	return s
}
