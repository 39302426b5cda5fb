package lipdk_test

import (
	"testing"

	"github.com/paleodata/lipdk"
)

func TestBytesString(t *testing.T) {
	tests := []struct {
		in  lipdk.Bytes
		exp string
	}{
		{0, "0B"},
		{512, "512B"},
		{1024, "1K"},
		{1536, "1.5K"},
		{1 << 20, "1M"},
		{3 << 30, "3G"},
		{1 << 40, "1T"},
	}
	for _, test := range tests {
		if got := test.in.String(); got != test.exp {
			t.Fatalf("Bytes(%d).String(): expected %v, got %v", uint64(test.in), test.exp, got)
		}
	}
}
