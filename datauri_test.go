package syntree

import (
	"net/url"
	"testing"
)

func TestEncodeURIComponent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "abcXYZ019", want: "abcXYZ019"},
		{in: "-_.!~*'()", want: "-_.!~*'()"},
		{in: " ", want: "%20"},
		{in: "<svg>", want: "%3Csvg%3E"},
		{in: `a="b"`, want: "a%3D%22b%22"},
		{in: "#262626;", want: "%23262626%3B"},
		{in: "/?&+:,@$", want: "%2F%3F%26%2B%3A%2C%40%24"},
		{in: "\n", want: "%0A"},
		{in: "é", want: "%C3%A9"},
	}

	for _, tt := range tests {
		if got := EncodeURIComponent(tt.in); got != tt.want {
			t.Errorf("EncodeURIComponent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSVGDataURI_RoundTrip(t *testing.T) {
	t.Parallel()

	uri := SVGDataURI(sampleSVG)
	payload := uri[len("data:image/svg+xml,"):]

	got, err := url.PathUnescape(payload)
	if err != nil {
		t.Fatalf("PathUnescape: %v", err)
	}
	if got != sampleSVG {
		t.Errorf("round trip mismatch:\n%q\n%q", got, sampleSVG)
	}
}
