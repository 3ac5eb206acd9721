package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	hasOpenRoom() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Open(ctx context.Context, code string) error
	Scan(ctx context.Context, path string) error
	Select(ctx context.Context, arg string) error
	Deselect(ctx context.Context, arg string) error
	Refresh(ctx context.Context) error
	Splits(ctx context.Context) error
	Breakdown(ctx context.Context) error
	Total(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the splitroom CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - scan [path]    — photograph of a receipt → new room
//	  - open [code]    — join a room by its six-character code
//	  - select <n>     — claim item n
//	  - deselect <n>   — release item n
//	  - refresh        — refetch the open room
//	  - splits         — per-user breakdown for the open room (from the server)
//	  - breakdown      — per-user breakdown computed locally
//	  - total          — your share of the open room
//	  - whoami         — show the logged-in identity
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sr> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: scan [path], open [code], select <n>, deselect <n>, refresh, splits, breakdown, total, whoami, logout, exit")
				if !a.hasOpenRoom() {
					printlnFn("Open a room first with 'open <code>', or 'scan' a receipt to create one")
				}
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "scan":
			_ = a.Scan(ctx, arg)

		case "open":
			_ = a.Open(ctx, arg)

		case "s", "select":
			_ = a.Select(ctx, arg)

		case "d", "deselect":
			_ = a.Deselect(ctx, arg)

		case "r", "refresh":
			_ = a.Refresh(ctx)

		case "splits":
			_ = a.Splits(ctx)

		case "breakdown":
			_ = a.Breakdown(ctx)

		case "total":
			_ = a.Total(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
