// Package commands defines the stayreal CLI and wires dependencies for subcommands.
//
// Commands
//
//   - auth set|show|clear|new-device-id            Manage the stored session
//   - refresh                                      Exchange the refresh token for new tokens
//   - status                                       Show the device id and access token expiry
//   - region set|show                              Manage the moment region
//   - moment                                       Fetch the last moment of the region
//   - balances settings|set|download|list          Manage balance records
//   - backup export|import                         Seal or restore local state
//   - posts settings|set|save|list|delete|stats    Save friends' posts locally
//   - headers                                      Print a freshly signed header set
//
// # Implementation
//
// The root command loads the configuration from the environment, applies
// flag overrides, falls back to the per-user data dir when no home was
// given, and builds the dependency graph before any subcommand runs.
// After a subcommand finishes, metrics are written to the configured
// textfile. A rejected refresh exits with status 2 so scripts can prompt
// for a new login.
package commands
