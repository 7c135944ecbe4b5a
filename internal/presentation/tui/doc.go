// Package tui renders trees for the terminal: a colored outline of the visible rows and a
// markdown task list rendered through glamour.
package tui
