// Package store provides file-based persistence for stayreal's local state.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk under the per-application data directory.
// Every write replaces the whole file through a temp file and rename, so a
// reader sees either the old or the new content, never a mix. Methods are
// safe for concurrent use within one process; concurrent processes can still
// race on read-modify-write and the last rename wins.
//
// The package includes:
//   - Credentials (CredentialsFileStore, credentials.json)
//   - Preferences (PreferencesFileStore, preferences.json)
//   - Balance records (BalancesDirStore, one file per record in a user folder)
//   - Saved-post log (PostLogFileStore, bereal_logger_config.json and
//     saved_posts_index.json, plus image files in the save directory)
//   - Passphrase-sealed JSON blobs for backups (WriteSealedJSON, ReadSealedJSON)
package store
