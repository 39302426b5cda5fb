package lipdk

import (
	"fmt"
	"strings"
)

// Bytes is a byte count with a human-readable String method, for log
// lines about download and archive sizes: 1.2G, 4M, 512B.
type Bytes uint64

var byteUnits = []struct {
	size Bytes
	name string
}{
	{1 << 40, "T"},
	{1 << 30, "G"},
	{1 << 20, "M"},
	{1 << 10, "K"},
}

func (b Bytes) String() string {
	for _, u := range byteUnits {
		if b >= u.size {
			s := fmt.Sprintf("%.1f", float64(b)/float64(u.size))
			return strings.TrimSuffix(s, ".0") + u.name
		}
	}
	return fmt.Sprintf("%dB", uint64(b))
}
