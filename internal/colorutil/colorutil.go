// Package colorutil validates and normalizes theme colors.
package colorutil

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// NormalizeHex validates a #rgb or #rrggbb color and returns it as
// lowercase #rrggbb.
func NormalizeHex(s string) (string, error) {
	c, err := colorful.Hex(expandShortHex(s))
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// expandShortHex turns "#abc" into "#aabbcc"; other values pass through.
func expandShortHex(s string) string {
	if len(s) != 4 || s[0] != '#' {
		return s
	}
	return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
}
