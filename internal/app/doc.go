// Package app wires application dependencies for the CLI.
//
// It loads Config from the environment, then builds the concrete stores,
// the signing and header stack, the remote client and the high-level
// services, exposing them via the Wire struct for commands to use.
package app
