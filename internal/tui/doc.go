// Package tui implements the terminal frontend: a bubbletea program that owns a
// single deck and renders it as a grid of cards.
package tui
