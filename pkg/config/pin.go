package config

import (
	"fmt"
	"strconv"
	"strings"
)

// PinKind classifies a physical pin descriptor.
type PinKind int

const (
	// PinDisabled is the sentinel for a role with no physical pin ("0").
	PinDisabled PinKind = iota
	// PinDigital is a digital pin addressed by number.
	PinDigital
	// PinAnalog is an analog input pin ("A0".."A15").
	PinAnalog
	// PinRemote is a pin on a secondary (remote) unit. The firmware
	// encodes these as pin numbers above 99.
	PinRemote
)

func (k PinKind) String() string {
	switch k {
	case PinDisabled:
		return "disabled"
	case PinDigital:
		return "digital"
	case PinAnalog:
		return "analog"
	case PinRemote:
		return "remote"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// remotePinBase is the first pin number interpreted as belonging to a
// remote unit.
const remotePinBase = 100

// Pin is a physical pin descriptor: a digital pin, an analog pin, the
// disabled sentinel, or a remote-unit pin.
type Pin struct {
	Kind   PinKind
	Number int
}

// Disabled returns the disabled sentinel pin.
func Disabled() Pin {
	return Pin{Kind: PinDisabled}
}

// Digital returns a digital pin descriptor.
func Digital(n int) Pin {
	return Pin{Kind: PinDigital, Number: n}
}

// Analog returns an analog pin descriptor (A<n>).
func Analog(n int) Pin {
	return Pin{Kind: PinAnalog, Number: n}
}

// Remote returns a remote-unit pin descriptor.
func Remote(n int) Pin {
	return Pin{Kind: PinRemote, Number: n}
}

// IsDisabled reports whether the pin is the disabled sentinel.
func (p Pin) IsDisabled() bool {
	return p.Kind == PinDisabled
}

// String returns the textual form used in configuration documents:
// "0" for disabled, "A3" for analog, the plain number otherwise.
func (p Pin) String() string {
	switch p.Kind {
	case PinDisabled:
		return "0"
	case PinAnalog:
		return fmt.Sprintf("A%d", p.Number)
	default:
		return strconv.Itoa(p.Number)
	}
}

// ParsePin parses the textual pin form. "0", empty, and "disabled" map to
// the disabled sentinel; "A<n>" is analog; numbers above 99 are remote;
// everything else numeric is digital.
func ParsePin(s string) (Pin, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" || strings.EqualFold(s, "disabled") {
		return Disabled(), nil
	}

	if len(s) > 1 && (s[0] == 'A' || s[0] == 'a') {
		n, err := strconv.Atoi(s[1:])
		if err != nil || n < 0 {
			return Pin{}, fmt.Errorf("invalid analog pin %q", s)
		}
		return Analog(n), nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Pin{}, fmt.Errorf("invalid pin %q", s)
	}
	if n == 0 {
		return Disabled(), nil
	}
	if n >= remotePinBase {
		return Remote(n), nil
	}
	return Digital(n), nil
}

// MarshalYAML emits the textual pin form.
func (p Pin) MarshalYAML() (any, error) {
	return p.String(), nil
}

// UnmarshalYAML accepts both quoted strings ("A0") and bare numbers (6).
func (p *Pin) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		var n int
		if err := unmarshal(&n); err != nil {
			return fmt.Errorf("pin value must be a number or string")
		}
		s = strconv.Itoa(n)
	}

	pin, err := ParsePin(s)
	if err != nil {
		return err
	}
	*p = pin
	return nil
}
