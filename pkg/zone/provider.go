package zone

import (
	"fmt"
	"sort"

	"github.com/msto63/chronos/pkg/civil"
)

// A Provider maps between UTC and local wall-clock readings.
//
// OffsetForUTC must be total. ResolveLocal must agree with it: every offset
// o it returns for a local reading satisfies OffsetForUTC(local-o) == o.
// Providers are compared by the civil values they produce, never by
// identity, so they should be cheap to copy.
type Provider interface {
	OffsetForUTC(utc civil.DateTime) Offset
	ResolveLocal(local civil.DateTime) Resolution[Offset]
	fmt.Stringer
}

// An Abbreviator names the offset in effect at a UTC instant, such as
// "CEST" or "EST".
type Abbreviator interface {
	Abbreviation(utc civil.DateTime) string
}

// A TransitionBounder declares the largest jump its local clock ever
// makes. Day.Start uses it to size its search window.
type TransitionBounder interface {
	MaxTransition() civil.Duration
}

// AbbreviationOf returns the abbreviation p reports for utc, falling back
// to the numeric offset.
func AbbreviationOf(p Provider, utc civil.DateTime) string {
	if a, ok := p.(Abbreviator); ok {
		if name := a.Abbreviation(utc); name != "" {
			return name
		}
	}
	return p.OffsetForUTC(utc).String()
}

// ResolveByCandidates resolves local against p by testing each candidate
// offset: a candidate o is valid when p reports o at local-o. Valid
// offsets are ordered by increasing UTC instant, which is decreasing
// offset. More than two valid offsets collapse to the outermost pair.
func ResolveByCandidates(p Provider, local civil.DateTime, candidates ...Offset) Resolution[Offset] {
	valid := make([]Offset, 0, len(candidates))
	for _, c := range candidates {
		if containsOffset(valid, c) {
			continue
		}
		utc, ok := c.UTCFromLocal(local)
		if !ok {
			continue
		}
		if p.OffsetForUTC(utc) == c {
			valid = append(valid, c)
		}
	}

	switch len(valid) {
	case 0:
		return None[Offset]()
	case 1:
		return Single(valid[0])
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].secs > valid[j].secs })
	return Ambiguous(valid[0], valid[len(valid)-1])
}

func containsOffset(list []Offset, o Offset) bool {
	for _, v := range list {
		if v == o {
			return true
		}
	}
	return false
}
