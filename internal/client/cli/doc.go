// Package cli provides the interactive storefront command-line client.
//
// It wires configuration, the persisted session, the API client, the upload
// sequencer and the form controllers behind a REPL. The terminal stands in
// for the browser pages: notifications are printed, confirmations are
// yes/no prompts and navigation moves a "current page" marker.
//
// Typical flow: restore the saved session, run commands until exit, save
// the session cookies again on login.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
