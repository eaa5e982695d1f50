package store

import "github.com/vgwingman/wingman/internal/route"

// ZeroCounters returns a counter map with every tracked category at zero.
// Backends overlay stored counts on top so progress documents always expose
// the full category set.
func ZeroCounters() map[string]int {
	m := make(map[string]int)
	for _, c := range route.Categories() {
		m[c] = 0
	}
	return m
}
