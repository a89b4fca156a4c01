package board

import (
	"fmt"
	"sort"
)

// Provider resolves board identifiers to capability tables. The validation
// engine only consumes this interface; it never defines board data.
type Provider interface {
	// Board returns the capability table for a board identifier.
	Board(id string) (*Board, error)
}

// Table is the default in-memory Provider. A Table is populated once
// (built-in definitions plus any loaded documents) and read-only after
// that, so it is safe for concurrent readers.
type Table struct {
	boards map[string]*Board
}

// NewTable creates an empty board table.
func NewTable() *Table {
	return &Table{boards: make(map[string]*Board)}
}

// Register adds a board definition. Registering the same ID twice
// replaces the earlier definition.
func (t *Table) Register(b *Board) {
	t.boards[b.ID] = b
}

// Board implements Provider.
func (t *Table) Board(id string) (*Board, error) {
	b, ok := t.boards[id]
	if !ok {
		return nil, fmt.Errorf("unknown board %q", id)
	}
	return b, nil
}

// IDs returns all registered board identifiers, sorted.
func (t *Table) IDs() []string {
	ids := make([]string, 0, len(t.boards))
	for id := range t.boards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Builtin returns a table with the stock board definitions.
func Builtin() *Table {
	t := NewTable()
	t.Register(arduinoMega2560())
	t.Register(arduinoUno())
	t.Register(arduinoNano())
	return t
}

func pinSet(pins ...int) map[int]bool {
	m := make(map[int]bool, len(pins))
	for _, p := range pins {
		m[p] = true
	}
	return m
}

func arduinoMega2560() *Board {
	return &Board{
		ID:          "arduino_mega_2560",
		Name:        "Arduino Mega 2560",
		MCU:         "ATmega2560",
		DigitalPins: 54,
		AnalogPins:  16,
		pwm:         pinSet(2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 44, 45, 46),
		interrupt:   pinSet(2, 3, 18, 19, 20, 21),
		reserved: map[string]string{
			"0":  "serial-rx",
			"1":  "serial-tx",
			"20": "i2c-sda",
			"21": "i2c-scl",
			"50": "spi-miso",
			"51": "spi-mosi",
			"52": "spi-sck",
			"53": "spi-ss",
		},
	}
}

func arduinoUno() *Board {
	return &Board{
		ID:          "arduino_uno",
		Name:        "Arduino Uno",
		MCU:         "ATmega328P",
		DigitalPins: 14,
		AnalogPins:  6,
		pwm:         pinSet(3, 5, 6, 9, 10, 11),
		interrupt:   pinSet(2, 3),
		reserved: map[string]string{
			"0":  "serial-rx",
			"1":  "serial-tx",
			"A4": "i2c-sda",
			"A5": "i2c-scl",
			"11": "spi-mosi",
			"12": "spi-miso",
			"13": "spi-sck",
		},
	}
}

func arduinoNano() *Board {
	return &Board{
		ID:          "arduino_nano",
		Name:        "Arduino Nano",
		MCU:         "ATmega328P",
		DigitalPins: 14,
		AnalogPins:  8,
		pwm:         pinSet(3, 5, 6, 9, 10, 11),
		interrupt:   pinSet(2, 3),
		reserved: map[string]string{
			"0":  "serial-rx",
			"1":  "serial-tx",
			"A4": "i2c-sda",
			"A5": "i2c-scl",
			"11": "spi-mosi",
			"12": "spi-miso",
			"13": "spi-sck",
		},
	}
}
