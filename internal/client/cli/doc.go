// Package cli provides the interactive splitroom command-line client.
//
// It wires configuration, the local token database, the HTTP API client and
// an interactive REPL for splitting a receipt with other people. Typical
// flow: log in, open a room by its six-character code (or scan a receipt to
// create one), claim items, and review who owes what.
//
// Key features:
//   - Register / Login / Logout with a locally persisted session
//   - Scan a receipt photo to create a new room
//   - Open a room and claim or unclaim line items
//   - Per-item shares, a personal total and the full room breakdown
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
