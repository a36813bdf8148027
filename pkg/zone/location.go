package zone

import (
	"time"

	"github.com/msto63/chronos/pkg/civil"
	"github.com/msto63/chronos/pkg/errors"
)

// ErrUnknownZone reports a zone name the tz database does not know.
var ErrUnknownZone = errors.New("unknown time zone")

// Location is a provider backed by a *time.Location from the system or
// embedded tz database.
type Location struct {
	loc *time.Location
}

// LoadLocation loads a named zone such as "Europe/Berlin". The names ""
// and "UTC" return UTC, and "Local" returns the system zone.
func LoadLocation(name string) (Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Location{}, errors.WithDetail(errors.Wrapf(ErrUnknownZone, "%q", name), err.Error())
	}
	return Location{loc: loc}, nil
}

// FromTimeLocation wraps loc. A nil loc means UTC.
func FromTimeLocation(loc *time.Location) Location {
	return Location{loc: loc}
}

// TimeLocation returns the wrapped *time.Location.
func (l Location) TimeLocation() *time.Location {
	if l.loc == nil {
		return time.UTC
	}
	return l.loc
}

func (l Location) at(utc civil.DateTime) (string, int) {
	return time.Unix(utc.Unix(), 0).In(l.TimeLocation()).Zone()
}

// OffsetForUTC implements Provider.
func (l Location) OffsetForUTC(utc civil.DateTime) Offset {
	_, secs := l.at(utc)
	return Offset{secs: int32(secs)}
}

// ResolveLocal implements Provider. Candidate offsets are those in effect
// within a day either side of the reading, the widest span an offset can
// reach.
func (l Location) ResolveLocal(local civil.DateTime) Resolution[Offset] {
	base := local.Unix()
	candidates := make([]Offset, 0, 5)
	for _, delta := range []int64{-86_400, -43_200, 0, 43_200, 86_400} {
		probe, ok := civil.DateTimeFromUnix(base+delta, 0)
		if !ok {
			continue
		}
		candidates = append(candidates, l.OffsetForUTC(probe))
	}
	return ResolveByCandidates(l, local, candidates...)
}

// Abbreviation implements Abbreviator.
func (l Location) Abbreviation(utc civil.DateTime) string {
	name, _ := l.at(utc)
	return name
}

// String returns the zone name.
func (l Location) String() string { return l.TimeLocation().String() }
