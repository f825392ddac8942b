// Package commands defines the zetra CLI and wires dependencies for subcommands.
//
// Commands
//
//   - create     Generate a new identity on this device
//   - show       Render the stored profile card
//   - id         Print the identity string only
//   - copy       Copy the identity string to the clipboard
//   - export     Write the profile to a .zetra.json file
//   - recover    Restore a profile from an export file (alias: import)
//   - reset      Remove the profile from this device
//   - health     Check that a zetra-server is up
//
// # Implementation
//
// The root command loads the layered configuration, builds a console logger
// and the dependency graph (key-value backend, profile store, identity
// service) before any subcommand runs. Errors are reported as the short
// notices the identity service defines.
package commands
