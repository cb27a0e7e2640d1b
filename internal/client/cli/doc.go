// Package cli provides the interactive MadHelp command-line client.
//
// NewApp wires configuration, the local session database and the backend
// API client into the services behind an interactive REPL. A background
// watcher pings the backend and switches the prompt between online and
// offline mode.
//
// Commands:
//   - signup / login / logout / status
//   - profile, editprofile, password
//   - docs [cv|dars], download <name|n>
//   - courses [query], course <n>
//   - faculty [query], fields <tag>[,tag]
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
