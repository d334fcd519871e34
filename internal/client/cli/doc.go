// Package cli provides the interactive GT Studio command-line client.
//
// It wires configuration, the persisted session, API services, and an
// interactive REPL for curating ground-truth collections. Typical flow:
// restore the session once at startup, then execute user commands until exit.
//
// Key features:
//   - Login / Logout / Register with a durable session
//   - Browse and edit collections and their QA pairs
//   - Review workflow: approve, reject, request changes
//   - Document search across data sources and answer drafting
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
