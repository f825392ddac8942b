// Package app loads configuration and wires zetra's dependencies.
//
// Config is layered: built-in defaults, then $ZETRA_HOME/config.yaml, then a
// .env file, then ZETRA_* environment variables, then command-line flags.
// NewWire turns a Config into the selected key-value backend, the profile
// store and the identity service shared by the CLI and the HTTP server.
package app
