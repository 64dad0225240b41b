// Package preferences reads and edits the stored user preferences.
package preferences
