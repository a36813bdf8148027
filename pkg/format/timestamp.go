package format

import (
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/zone"
)

// Timestamp is an instant at a fixed offset that round-trips through text
// encodings (JSON, YAML, TOML) as RFC 3339. It lives here rather than on
// instant.Instant because decoding needs the parser.
type Timestamp struct {
	instant.Instant[zone.Offset]
}

// NewTimestamp fixes i at its current offset.
func NewTimestamp[P zone.Provider](i instant.Instant[P]) Timestamp {
	return Timestamp{i.Fixed()}
}

// MarshalText writes the shortest exact RFC 3339 form, Z for UTC.
func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(FormatRFC3339(t.Instant, AutoSi, true)), nil
}

// UnmarshalText accepts anything ParseAny does.
func (t *Timestamp) UnmarshalText(b []byte) error {
	i, err := ParseAny(string(b))
	if err != nil {
		return err
	}
	t.Instant = i
	return nil
}

func (t Timestamp) String() string {
	return FormatRFC3339(t.Instant, AutoSi, true)
}
