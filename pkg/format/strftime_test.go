package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrftimeItems(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		want   []Item
	}{
		{"empty", "", nil},
		{"date", "%Y-%m-%d", []Item{Num(Year, PadZero), Literal("-"), Num(Month, PadZero), Literal("-"), Num(Day, PadZero)}},
		{"whitespace runs", "a  b", []Item{Literal("a"), Space("  "), Literal("b")}},
		{"no padding", "%-d", []Item{Num(Day, PadNone)}},
		{"space padding", "%_m", []Item{Num(Month, PadSpace)}},
		{"zero padding", "%0e", []Item{Num(Day, PadZero)}},
		{"dotted fraction", "%.3f", []Item{Fix(Frac3)}},
		{"auto fraction", "%.f", []Item{Fix(FracAuto)}},
		{"bare fraction", "%6f", []Item{Fix(Frac6NoDot)}},
		{"colon offset", "%:z", []Item{Fix(TimezoneOffsetColon)}},
		{"permissive offset", "%#z", []Item{Fix(TimezoneOffsetPermissive)}},
		{"unix timestamp", "%s", []Item{Num(UnixTimestamp, PadNone)}},
		{"percent", "%%", []Item{Literal("%")}},
		{"expansion", "%R", []Item{Num(Hour, PadZero), Literal(":"), Num(Minute, PadZero)}},
		{"unknown directive", "%Q", []Item{ErrorItem("%Q")}},
		{"padding a name", "%-B", []Item{ErrorItem("%-B")}},
		{"dangling percent", "x%", []Item{Literal("x"), ErrorItem("%")}},
		{"bad fraction", "%.4f", []Item{ErrorItem("%.4f")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StrftimeItems(tt.layout))
		})
	}
}
