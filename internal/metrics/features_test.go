package metrics_test

import (
	"testing"

	"coursechat/internal/metrics"
)

func TestCountOutput(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want metrics.OutputFeatures
	}{
		{"empty", "", metrics.OutputFeatures{}},
		{"ascii", "no relevant content", metrics.OutputFeatures{Bytes: 19, Runes: 19, Words: 3}},
		{"multibyte", "héllo", metrics.OutputFeatures{Bytes: 6, Runes: 5, Words: 1}},
		{"whitespace runs", "a  b\t c\n", metrics.OutputFeatures{Bytes: 8, Runes: 8, Words: 3}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := metrics.CountOutput(c.in); got != c.want {
				t.Fatalf("got %+v want %+v", got, c.want)
			}
		})
	}
}
