// Package backup exports and restores the local state (credentials and
// preferences) as a single passphrase-sealed file.
//
// The file is sealed with scrypt and ChaCha20-Poly1305. It is meant for
// moving a session between machines; the plaintext never touches disk.
package backup
