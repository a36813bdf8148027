package zone

import (
	"github.com/msto63/chronos/pkg/errors"
)

// ErrInvalidPOSIX reports a malformed POSIX TZ string.
var ErrInvalidPOSIX = errors.New("invalid POSIX TZ string")

// Rule times may reach 167 hours either way.
const maxRuleHours = 167

type ruleKind uint8

const (
	ruleJulian       ruleKind = iota // Jn: 1..365, February 29 never counted
	ruleDayOfYear                    // n: 0..365, February 29 counted
	ruleMonthWeekDay                 // Mm.w.d
)

// transitionRule is one of the two yearly switches of a POSIX TZ string.
// time is in seconds of local time as it reads just before the switch.
type transitionRule struct {
	kind  ruleKind
	day   int
	week  int
	month int
	time  int
}

type posixParser struct {
	src  string
	rest string
}

func (p *posixParser) fail(what string) error {
	return errors.Wrapf(ErrInvalidPOSIX, "%q: %s at offset %d", p.src, what, len(p.src)-len(p.rest))
}

// ParsePOSIX parses a TZ string in the POSIX form used by the TZif footer,
// for example "EST5EDT,M3.2.0,M11.1.0" or "<+0330>-3:30". Offsets in the
// string count west of UTC; the returned Rules reports them east of UTC.
// A daylight name without rules gets the United States rules.
func ParsePOSIX(s string) (Rules, error) {
	p := &posixParser{src: s, rest: s}
	r := Rules{tz: s}

	var err error
	if r.stdName, err = p.name(); err != nil {
		return Rules{}, err
	}
	west, err := p.offset(24)
	if err != nil {
		return Rules{}, err
	}
	if r.std, err = p.east(west); err != nil {
		return Rules{}, err
	}
	if p.rest == "" {
		return r, nil
	}

	if r.dstName, err = p.name(); err != nil {
		return Rules{}, err
	}
	if p.rest == "" || p.rest[0] == ',' {
		r.dst = Offset{secs: r.std.secs + 3600}
	} else {
		if west, err = p.offset(24); err != nil {
			return Rules{}, err
		}
		if r.dst, err = p.east(west); err != nil {
			return Rules{}, err
		}
	}
	if p.rest == "" {
		p.rest = ",M3.2.0,M11.1.0"
	}

	if r.start, err = p.rule(); err != nil {
		return Rules{}, err
	}
	if r.end, err = p.rule(); err != nil {
		return Rules{}, err
	}
	if p.rest != "" {
		return Rules{}, p.fail("trailing characters")
	}
	r.hasDST = true
	return r, nil
}

func (p *posixParser) east(west int) (Offset, error) {
	o, ok := East(-west)
	if !ok {
		return Offset{}, p.fail("offset out of range")
	}
	return o, nil
}

// name reads an alphabetic abbreviation of at least three letters or a
// quoted <...> form.
func (p *posixParser) name() (string, error) {
	if p.rest == "" {
		return "", p.fail("missing zone name")
	}
	if p.rest[0] == '<' {
		for i := 1; i < len(p.rest); i++ {
			if p.rest[i] == '>' {
				name := p.rest[1:i]
				p.rest = p.rest[i+1:]
				if len(name) < 3 {
					return "", p.fail("zone name too short")
				}
				return name, nil
			}
		}
		return "", p.fail("unterminated zone name")
	}
	i := 0
	for i < len(p.rest) && isAlpha(p.rest[i]) {
		i++
	}
	if i < 3 {
		return "", p.fail("zone name too short")
	}
	name := p.rest[:i]
	p.rest = p.rest[i:]
	return name, nil
}

// offset reads [+-]hh[:mm[:ss]] and returns it in seconds.
func (p *posixParser) offset(maxHours int) (int, error) {
	sign := 1
	if p.rest != "" && (p.rest[0] == '+' || p.rest[0] == '-') {
		if p.rest[0] == '-' {
			sign = -1
		}
		p.rest = p.rest[1:]
	}
	hours, err := p.num(0, maxHours)
	if err != nil {
		return 0, err
	}
	secs := hours * 3600
	for _, unit := range []int{60, 1} {
		if p.rest == "" || p.rest[0] != ':' {
			break
		}
		p.rest = p.rest[1:]
		n, err := p.num(0, 59)
		if err != nil {
			return 0, err
		}
		secs += n * unit
	}
	return sign * secs, nil
}

func (p *posixParser) rule() (transitionRule, error) {
	if p.rest == "" || p.rest[0] != ',' {
		return transitionRule{}, p.fail("expected ','")
	}
	p.rest = p.rest[1:]

	var r transitionRule
	var err error
	switch {
	case p.rest == "":
		return transitionRule{}, p.fail("missing rule")
	case p.rest[0] == 'J':
		p.rest = p.rest[1:]
		r.kind = ruleJulian
		if r.day, err = p.num(1, 365); err != nil {
			return transitionRule{}, err
		}
	case p.rest[0] == 'M':
		p.rest = p.rest[1:]
		r.kind = ruleMonthWeekDay
		if r.month, err = p.num(1, 12); err != nil {
			return transitionRule{}, err
		}
		if err = p.expect('.'); err != nil {
			return transitionRule{}, err
		}
		if r.week, err = p.num(1, 5); err != nil {
			return transitionRule{}, err
		}
		if err = p.expect('.'); err != nil {
			return transitionRule{}, err
		}
		if r.day, err = p.num(0, 6); err != nil {
			return transitionRule{}, err
		}
	default:
		r.kind = ruleDayOfYear
		if r.day, err = p.num(0, 365); err != nil {
			return transitionRule{}, err
		}
	}

	r.time = 2 * 3600
	if p.rest != "" && p.rest[0] == '/' {
		p.rest = p.rest[1:]
		if r.time, err = p.offset(maxRuleHours); err != nil {
			return transitionRule{}, err
		}
	}
	return r, nil
}

func (p *posixParser) expect(c byte) error {
	if p.rest == "" || p.rest[0] != c {
		return p.fail("expected '" + string(c) + "'")
	}
	p.rest = p.rest[1:]
	return nil
}

func (p *posixParser) num(lo, hi int) (int, error) {
	i, n := 0, 0
	for i < len(p.rest) && isDigit(p.rest[i]) {
		n = n*10 + int(p.rest[i]-'0')
		i++
		if n > hi {
			return 0, p.fail("number out of range")
		}
	}
	if i == 0 {
		return 0, p.fail("expected number")
	}
	if n < lo {
		return 0, p.fail("number out of range")
	}
	p.rest = p.rest[i:]
	return n, nil
}

func isAlpha(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
