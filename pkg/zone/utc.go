package zone

import "github.com/msto63/chronos/pkg/civil"

// UTCZone is the provider for Coordinated Universal Time. It differs from
// the zero Offset only in how it is displayed.
type UTCZone struct{}

// UTC is the UTCZone value.
var UTC = UTCZone{}

// OffsetForUTC implements Provider.
func (UTCZone) OffsetForUTC(civil.DateTime) Offset { return Offset{} }

// ResolveLocal implements Provider.
func (UTCZone) ResolveLocal(civil.DateTime) Resolution[Offset] { return Single(Offset{}) }

// Abbreviation implements Abbreviator.
func (UTCZone) Abbreviation(civil.DateTime) string { return "UTC" }

func (UTCZone) String() string { return "UTC" }
