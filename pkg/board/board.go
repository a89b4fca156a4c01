// Package board provides per-board pin capability tables for validation.
// A board knows, for every physical pin, which capability classes the pin
// supports and whether the pin is reserved by a fixed peripheral. Board
// data is loaded once and read-only afterwards.
package board

import (
	"fmt"
	"sort"
	"strings"

	"github.com/k3ng-tools/rotorconf-go/pkg/config"
)

// Capability is a capability class a physical pin may support.
type Capability string

const (
	CapDigital   Capability = "digital"
	CapAnalog    Capability = "analog"
	CapPWM       Capability = "pwm"
	CapInterrupt Capability = "interrupt"
)

// ParseCapability validates a capability class name.
func ParseCapability(s string) (Capability, error) {
	switch Capability(strings.ToLower(s)) {
	case CapDigital:
		return CapDigital, nil
	case CapAnalog:
		return CapAnalog, nil
	case CapPWM:
		return CapPWM, nil
	case CapInterrupt:
		return CapInterrupt, nil
	default:
		return "", fmt.Errorf("unknown pin capability %q", s)
	}
}

// Board is one board's pin capability table.
type Board struct {
	// ID is the board identifier (e.g., "arduino_mega_2560").
	ID string
	// Name is the human-readable board name.
	Name string
	// MCU is the microcontroller part name.
	MCU string

	// DigitalPins is the number of digital pins; they are numbered
	// 0..DigitalPins-1.
	DigitalPins int
	// AnalogPins is the number of analog inputs; they are named
	// A0..A(AnalogPins-1).
	AnalogPins int

	pwm       map[int]bool
	interrupt map[int]bool
	// reserved maps a pin's textual form ("20", "A4") to a reservation
	// tag like "i2c-sda" or "serial-tx".
	reserved map[string]string
}

// HasPin reports whether the descriptor addresses a pin that physically
// exists on this board. Remote pins always exist (they belong to the
// secondary unit); the disabled sentinel never does.
func (b *Board) HasPin(p config.Pin) bool {
	switch p.Kind {
	case config.PinDigital:
		return p.Number >= 0 && p.Number < b.DigitalPins
	case config.PinAnalog:
		return p.Number >= 0 && p.Number < b.AnalogPins
	case config.PinRemote:
		return true
	default:
		return false
	}
}

// Capabilities returns the capability classes of a pin. All digital pins
// carry the digital class; analog inputs carry analog (and digital, since
// AVR analog pins double as digital I/O).
func (b *Board) Capabilities(p config.Pin) []Capability {
	if !b.HasPin(p) {
		return nil
	}

	switch p.Kind {
	case config.PinAnalog:
		return []Capability{CapDigital, CapAnalog}
	case config.PinRemote:
		// The secondary unit's capabilities are unknown here; only
		// plain digital use is assumed.
		return []Capability{CapDigital}
	}

	caps := []Capability{CapDigital}
	if b.pwm[p.Number] {
		caps = append(caps, CapPWM)
	}
	if b.interrupt[p.Number] {
		caps = append(caps, CapInterrupt)
	}
	return caps
}

// HasCapability reports whether the pin supports the capability class.
func (b *Board) HasCapability(p config.Pin, c Capability) bool {
	for _, have := range b.Capabilities(p) {
		if have == c {
			return true
		}
	}
	return false
}

// Reservation returns the reservation tag for a pin (e.g., "i2c-sda"),
// or "" if the pin is not reserved.
func (b *Board) Reservation(p config.Pin) string {
	return b.reserved[p.String()]
}

// ReservationBus returns the peripheral part of a reservation tag:
// "i2c-sda" -> "i2c". Tags without a dash are returned unchanged.
func ReservationBus(tag string) string {
	if i := strings.IndexByte(tag, '-'); i > 0 {
		return tag[:i]
	}
	return tag
}

// ReservedPin is one reserved pin and its reservation tag.
type ReservedPin struct {
	Pin string
	Tag string
}

// ReservedPins returns the board's reservations sorted by pin name.
func (b *Board) ReservedPins() []ReservedPin {
	out := make([]ReservedPin, 0, len(b.reserved))
	for pin, tag := range b.reserved {
		out = append(out, ReservedPin{Pin: pin, Tag: tag})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pin < out[j].Pin })
	return out
}

// PinsWithCapability returns all non-reserved pins supporting the
// capability class, in ascending pin order. Used to propose replacement
// pins for capability errors.
func (b *Board) PinsWithCapability(c Capability) []config.Pin {
	var pins []config.Pin

	if c == CapAnalog {
		for n := 0; n < b.AnalogPins; n++ {
			p := config.Analog(n)
			if b.Reservation(p) == "" {
				pins = append(pins, p)
			}
		}
		return pins
	}

	for n := 0; n < b.DigitalPins; n++ {
		p := config.Digital(n)
		if b.Reservation(p) != "" {
			continue
		}
		if b.HasCapability(p, c) {
			pins = append(pins, p)
		}
	}
	sort.Slice(pins, func(i, j int) bool { return pins[i].Number < pins[j].Number })
	return pins
}
