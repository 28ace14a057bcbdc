package syntree

import "strings"

// SVGMimeType is the media type of rendered images.
const SVGMimeType = "image/svg+xml"

const upperHex = "0123456789ABCDEF"

// SVGDataURI wraps svg as a percent-encoded data URI suitable for an
// <object data=...> attribute.
func SVGDataURI(svg string) string {
	return "data:" + SVGMimeType + "," + EncodeURIComponent(svg)
}

// EncodeURIComponent percent-encodes s as UTF-8, leaving only
// A-Z a-z 0-9 and - _ . ! ~ * ' ( ) unescaped.
// url.QueryEscape and url.PathEscape both keep a different set.
func EncodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3 / 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if uriUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

func uriUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
