package zone

// Kind tells how many offsets, or instants, a local reading resolved to.
type Kind uint8

const (
	// KindNone means the reading falls into a gap and denotes no instant.
	KindNone Kind = iota
	// KindSingle means the reading is unambiguous.
	KindSingle
	// KindAmbiguous means the reading falls into an overlap.
	KindAmbiguous
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindSingle:
		return "Single"
	case KindAmbiguous:
		return "Ambiguous"
	}
	return "Kind(?)"
}

// A Resolution is the outcome of mapping a local reading through a
// provider. Ambiguous results hold two values ordered by increasing UTC
// instant; which of them is pre-transition is up to the provider.
type Resolution[T any] struct {
	kind    Kind
	earlier T
	later   T
}

// None returns an empty resolution.
func None[T any]() Resolution[T] {
	return Resolution[T]{kind: KindNone}
}

// Single returns an unambiguous resolution.
func Single[T any](v T) Resolution[T] {
	return Resolution[T]{kind: KindSingle, earlier: v, later: v}
}

// Ambiguous returns a two-valued resolution. earlier must precede later on
// the UTC timeline.
func Ambiguous[T any](earlier, later T) Resolution[T] {
	return Resolution[T]{kind: KindAmbiguous, earlier: earlier, later: later}
}

// Kind reports which of the three cases r holds.
func (r Resolution[T]) Kind() Kind { return r.kind }

// Single returns the value of an unambiguous resolution.
func (r Resolution[T]) Single() (T, bool) {
	if r.kind != KindSingle {
		var zero T
		return zero, false
	}
	return r.earlier, true
}

// Earliest returns the value that comes first on the UTC timeline, or false
// for None.
func (r Resolution[T]) Earliest() (T, bool) {
	if r.kind == KindNone {
		var zero T
		return zero, false
	}
	return r.earlier, true
}

// Latest returns the value that comes last on the UTC timeline, or false
// for None.
func (r Resolution[T]) Latest() (T, bool) {
	if r.kind == KindNone {
		var zero T
		return zero, false
	}
	return r.later, true
}

// Both returns the two values of an ambiguous resolution.
func (r Resolution[T]) Both() (earlier, later T, ok bool) {
	if r.kind != KindAmbiguous {
		return earlier, later, false
	}
	return r.earlier, r.later, true
}

// MapResolution applies f to every value held by r, keeping its kind.
func MapResolution[T, U any](r Resolution[T], f func(T) U) Resolution[U] {
	switch r.kind {
	case KindSingle:
		return Single(f(r.earlier))
	case KindAmbiguous:
		return Ambiguous(f(r.earlier), f(r.later))
	}
	return None[U]()
}
