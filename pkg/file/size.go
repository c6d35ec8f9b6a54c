package file

import (
	"math"
	"strconv"
)

const (
	KiB int64 = 1 << (10 * (iota + 1))
	MiB
	GiB
	TiB
	PiB
)

// FormatSize renders a byte count with binary prefixes and no decimals,
// rounding half away from zero: 500 -> "500 B", 1536 -> "2 KiB",
// 1073741824 -> "1 GiB". Each bracket is half-open, so an exact power of
// 1024 belongs to the larger unit.
//
// PiB is the largest unit: values of 1024 PiB and above keep counting in
// PiB ("2048 PiB") instead of switching to EiB.
func FormatSize(bytes int64) string {
	switch {
	case bytes < KiB:
		return strconv.FormatInt(bytes, 10) + " B"
	case bytes < MiB:
		return scaled(bytes, KiB) + " KiB"
	case bytes < GiB:
		return scaled(bytes, MiB) + " MiB"
	case bytes < TiB:
		return scaled(bytes, GiB) + " GiB"
	case bytes < PiB:
		return scaled(bytes, TiB) + " TiB"
	default:
		return scaled(bytes, PiB) + " PiB"
	}
}

func scaled(bytes, unit int64) string {
	return strconv.FormatFloat(math.Round(float64(bytes)/float64(unit)), 'f', 0, 64)
}
