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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Collections(ctx context.Context) error
	Use(ctx context.Context, id string) error
	NewCollection(ctx context.Context) error
	EditCollection(ctx context.Context, id string) error
	DeleteCollection(ctx context.Context, id string) error
	Pairs(ctx context.Context) error
	AddPair(ctx context.Context) error
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	Revise(ctx context.Context, id string) error
	DeletePair(ctx context.Context, id string) error
	Search(ctx context.Context, query string) error
	FilterDocs(ctx context.Context, arg string) error
	SortDocs(ctx context.Context, field, dir string) error
	Sources(ctx context.Context) error
	Templates(ctx context.Context) error
	Draft(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the GT Studio CLI.
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
//	  - help           - show available commands
//	  - register       - create an account
//	  - login          - authenticate
//	  - exit | quit    - leave the program
//
//	Logged in:
//	  - help           - show available commands
//	  - collections    - list collections
//	  - use <id>       - select a collection
//	  - newcol         - create a collection
//	  - editcol <id>   - edit a collection
//	  - delcol <id>    - delete a collection
//	  - pairs          - list QA pairs of the selection
//	  - addpair        - add a QA pair
//	  - approve <id>   - approve a QA pair
//	  - reject <id>    - reject a QA pair
//	  - revise <id>    - request changes on a QA pair
//	  - delpair <id>   - delete a QA pair
//	  - search <query> - search documents
//	  - filter [k=v]   - narrow the last search results locally
//	  - sortdocs <field> [asc|desc] - reorder the last search results
//	  - sources        - list data sources
//	  - templates      - list prompt templates
//	  - draft          - draft an answer from retrieved documents
//	  - me             - show the signed-in profile
//	  - logout         - log out
//	  - exit | quit    - leave the program
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gts> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: collections, use <id>, newcol, editcol <id>, delcol <id>, pairs, addpair, approve <id>, reject <id>, revise <id>, delpair <id>, search <query>, filter [k=v], sortdocs <field> [asc|desc], sources, templates, draft, me, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "me":
			_ = a.Me(ctx)

		case "collections":
			_ = a.Collections(ctx)

		case "use":
			if len(args) == 0 {
				printlnFn("Usage: use <collection id>")
				continue
			}
			_ = a.Use(ctx, args[0])

		case "newcol":
			_ = a.NewCollection(ctx)

		case "editcol":
			if len(args) == 0 {
				printlnFn("Usage: editcol <collection id>")
				continue
			}
			_ = a.EditCollection(ctx, args[0])

		case "delcol":
			if len(args) == 0 {
				printlnFn("Usage: delcol <collection id>")
				continue
			}
			_ = a.DeleteCollection(ctx, args[0])

		case "pairs":
			_ = a.Pairs(ctx)

		case "addpair":
			_ = a.AddPair(ctx)

		case "approve":
			if len(args) == 0 {
				printlnFn("Usage: approve <qa pair id>")
				continue
			}
			_ = a.Approve(ctx, args[0])

		case "reject":
			if len(args) == 0 {
				printlnFn("Usage: reject <qa pair id>")
				continue
			}
			_ = a.Reject(ctx, args[0])

		case "revise":
			if len(args) == 0 {
				printlnFn("Usage: revise <qa pair id>")
				continue
			}
			_ = a.Revise(ctx, args[0])

		case "delpair":
			if len(args) == 0 {
				printlnFn("Usage: delpair <qa pair id>")
				continue
			}
			_ = a.DeletePair(ctx, args[0])

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <query>")
				continue
			}
			_ = a.Search(ctx, strings.Join(args, " "))

		case "filter":
			_ = a.FilterDocs(ctx, strings.Join(args, " "))

		case "sortdocs":
			if len(args) == 0 {
				printlnFn("Usage: sortdocs <field> [asc|desc]")
				continue
			}
			dir := ""
			if len(args) > 1 {
				dir = args[1]
			}
			_ = a.SortDocs(ctx, args[0], dir)

		case "sources":
			_ = a.Sources(ctx)

		case "templates":
			_ = a.Templates(ctx)

		case "draft":
			_ = a.Draft(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
