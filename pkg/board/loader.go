package board

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/k3ng-tools/rotorconf-go/pkg/config"
)

// yamlBoard is the on-disk board document structure.
type yamlBoard struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	MCU         string            `yaml:"mcu"`
	DigitalPins int               `yaml:"digital_pins"`
	AnalogPins  int               `yaml:"analog_pins"`
	PWM         []int             `yaml:"pwm"`
	Interrupt   []int             `yaml:"interrupt"`
	Reserved    map[string]string `yaml:"reserved"`
}

// Parse parses a YAML board document. A malformed document or a pin
// reference outside the board's physical range is a fault; no board is
// returned.
func Parse(data []byte) (*Board, error) {
	var y yamlBoard
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("board document parse error: %w", err)
	}

	if y.ID == "" {
		return nil, fmt.Errorf("board document missing id")
	}
	if y.DigitalPins <= 0 {
		return nil, fmt.Errorf("board %s: digital_pins must be positive", y.ID)
	}
	if y.AnalogPins < 0 {
		return nil, fmt.Errorf("board %s: analog_pins must not be negative", y.ID)
	}

	b := &Board{
		ID:          y.ID,
		Name:        y.Name,
		MCU:         y.MCU,
		DigitalPins: y.DigitalPins,
		AnalogPins:  y.AnalogPins,
		pwm:         make(map[int]bool, len(y.PWM)),
		interrupt:   make(map[int]bool, len(y.Interrupt)),
		reserved:    make(map[string]string, len(y.Reserved)),
	}

	for _, n := range y.PWM {
		if n < 0 || n >= y.DigitalPins {
			return nil, fmt.Errorf("board %s: pwm pin %d outside digital range 0-%d", y.ID, n, y.DigitalPins-1)
		}
		b.pwm[n] = true
	}
	for _, n := range y.Interrupt {
		if n < 0 || n >= y.DigitalPins {
			return nil, fmt.Errorf("board %s: interrupt pin %d outside digital range 0-%d", y.ID, n, y.DigitalPins-1)
		}
		b.interrupt[n] = true
	}
	for pinStr, tag := range y.Reserved {
		p, err := config.ParsePin(pinStr)
		if err != nil {
			return nil, fmt.Errorf("board %s: reserved entry: %w", y.ID, err)
		}
		// Only physical pins of this board can be reserved. Remote pins
		// belong to the secondary unit and would otherwise pass HasPin.
		if p.Kind != config.PinDigital && p.Kind != config.PinAnalog {
			return nil, fmt.Errorf("board %s: reserved pin %s is not a physical pin", y.ID, p)
		}
		if !b.HasPin(p) {
			return nil, fmt.Errorf("board %s: reserved pin %s does not exist on this board", y.ID, p)
		}
		if tag == "" {
			return nil, fmt.Errorf("board %s: reserved pin %s has empty tag", y.ID, p)
		}
		b.reserved[p.String()] = tag
	}

	return b, nil
}

// LoadFile reads and parses one board document.
func LoadFile(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board document: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// LoadDir loads every *.yaml board document in a directory into the table.
func (t *Table) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read board directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if len(name) < 6 || name[len(name)-5:] != ".yaml" {
			continue
		}
		b, err := LoadFile(dir + "/" + name)
		if err != nil {
			return err
		}
		t.Register(b)
	}
	return nil
}
