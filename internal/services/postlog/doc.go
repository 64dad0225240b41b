// Package postlog saves friends' posts to a folder chosen by the user.
//
// Each saved post gets a random id; its two images are written under
// <save_directory>/<username>/ and an entry is appended to the saved-post
// index in the data dir.
package postlog
