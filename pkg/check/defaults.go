package check

import "github.com/k3ng-tools/rotorconf-go/pkg/board"

// DefaultRules returns the stock rotator controller ruleset: control
// protocol exclusivity, position sensor groups, tracking dependencies,
// and the usual auto-enable chains. External rule documents replace this
// wholesale; the two are never merged.
func DefaultRules() *RuleSet {
	return &RuleSet{
		MutualExclusivity: []MutualExclusivityRule{
			{
				ID:    "protocol-exclusive",
				Group: "protocol",
				Features: []string{
					"FEATURE_YAESU_EMULATION",
					"FEATURE_EASYCOM_EMULATION",
					"FEATURE_DCU_1_EMULATION",
				},
				Priority: []string{
					"FEATURE_YAESU_EMULATION",
					"FEATURE_EASYCOM_EMULATION",
					"FEATURE_DCU_1_EMULATION",
				},
				Message: "only one control protocol emulation can be active",
			},
			{
				ID:    "az-sensor-exclusive",
				Group: "az_position_sensor",
				Features: []string{
					"FEATURE_AZ_POSITION_POTENTIOMETER",
					"FEATURE_AZ_POSITION_ROTARY_ENCODER",
					"FEATURE_AZ_POSITION_INCREMENTAL_ENCODER",
					"FEATURE_AZ_POSITION_PULSE_INPUT",
					"FEATURE_AZ_POSITION_HMC5883L",
					"FEATURE_AZ_POSITION_ADAFRUIT_LSM303",
				},
				Message: "only one azimuth position sensor can be active",
			},
			{
				ID:    "el-sensor-exclusive",
				Group: "el_position_sensor",
				Features: []string{
					"FEATURE_EL_POSITION_POTENTIOMETER",
					"FEATURE_EL_POSITION_ROTARY_ENCODER",
					"FEATURE_EL_POSITION_INCREMENTAL_ENCODER",
					"FEATURE_EL_POSITION_PULSE_INPUT",
					"FEATURE_EL_POSITION_ADXL345_USING_ADAFRUIT_LIB",
					"FEATURE_EL_POSITION_ADAFRUIT_LSM303",
				},
				Message: "only one elevation position sensor can be active",
			},
			{
				ID:    "display-exclusive",
				Group: "display",
				Features: []string{
					"FEATURE_4_BIT_LCD_DISPLAY",
					"FEATURE_ADAFRUIT_I2C_LCD",
					"FEATURE_YWROBOT_I2C_DISPLAY",
					"FEATURE_NEXTION_DISPLAY",
				},
				Message: "only one display driver can be active",
			},
		},

		Conflicts: []ConflictRule{
			{
				ID:      "slave-vs-serial-master",
				Between: []string{"FEATURE_REMOTE_UNIT_SLAVE", "FEATURE_MASTER_WITH_SERIAL_SLAVE"},
				Message: "a unit cannot be both a remote slave and a serial master",
			},
			{
				ID:      "slave-vs-ethernet-master",
				Between: []string{"FEATURE_REMOTE_UNIT_SLAVE", "FEATURE_MASTER_WITH_ETHERNET_SLAVE"},
				Message: "a unit cannot be both a remote slave and an ethernet master",
			},
		},

		RequiredDependencies: []RequiredDependencyRule{
			{
				ID:      "moon-tracking-deps",
				Feature: "FEATURE_MOON_TRACKING",
				Requires: []string{
					"FEATURE_ELEVATION_CONTROL",
					"FEATURE_CLOCK",
				},
				Message: "moon tracking needs elevation control and a clock source",
			},
			{
				ID:      "sun-tracking-deps",
				Feature: "FEATURE_SUN_TRACKING",
				Requires: []string{
					"FEATURE_ELEVATION_CONTROL",
					"FEATURE_CLOCK",
				},
				Message: "sun tracking needs elevation control and a clock source",
			},
			{
				ID:       "el-pot-needs-elevation",
				Feature:  "FEATURE_EL_POSITION_POTENTIOMETER",
				Requires: []string{"FEATURE_ELEVATION_CONTROL"},
				Message:  "an elevation sensor is pointless without elevation control",
			},
			{
				ID:       "el-encoder-needs-elevation",
				Feature:  "FEATURE_EL_POSITION_INCREMENTAL_ENCODER",
				Requires: []string{"FEATURE_ELEVATION_CONTROL"},
				Message:  "an elevation sensor is pointless without elevation control",
			},
			{
				ID:       "gps-sync-needs-clock",
				Feature:  "OPTION_SYNC_MASTER_CLOCK_TO_SLAVE",
				Requires: []string{"FEATURE_CLOCK"},
				Message:  "clock synchronization needs the clock feature",
			},
		},

		ConditionalDisables: []ConditionalDisableRule{
			{
				ID:      "el-rotate-limits-context",
				Feature: "OPTION_EL_MANUAL_ROTATE_LIMITS",
				When:    &Predicate{Active: "FEATURE_ELEVATION_CONTROL"},
				Message: "elevation rotate limits only apply while elevation control is active",
			},
		},

		AutoEnables: []AutoEnableRule{
			{
				ID:      "gps-enables-clock",
				Trigger: "FEATURE_GPS",
				Target:  "FEATURE_CLOCK",
				Message: "GPS provides time; the clock should be enabled to use it",
			},
			{
				ID:      "rtc-enables-clock",
				Trigger: "FEATURE_RTC_DS1307",
				Target:  "FEATURE_CLOCK",
				Message: "an RTC provides time; the clock should be enabled to use it",
			},
			{
				ID: "i2c-sensors-enable-wire",
				When: &Predicate{Any: []*Predicate{
					{Active: "FEATURE_AZ_POSITION_HMC5883L"},
					{Active: "FEATURE_AZ_POSITION_ADAFRUIT_LSM303"},
					{Active: "FEATURE_EL_POSITION_ADXL345_USING_ADAFRUIT_LIB"},
					{Active: "FEATURE_EL_POSITION_ADAFRUIT_LSM303"},
					{Active: "FEATURE_RTC_DS1307"},
					{Active: "FEATURE_RTC_PCF8583"},
				}},
				Target:    "FEATURE_WIRE_SUPPORT",
				Mandatory: true,
				Message:   "I2C sensors require the wire library",
			},
		},
	}
}

// DefaultRequirements returns the stock pin requirement table: which roles
// need PWM, interrupt, or analog pins, and which feature each role belongs
// to.
func DefaultRequirements() *Requirements {
	reqs, err := NewRequirements([]Requirement{
		// Motor speed control uses PWM output.
		{Role: "azimuth_speed_voltage", Capability: board.CapPWM,
			Description: "azimuth motor speed control"},
		{Role: "elevation_speed_voltage", Capability: board.CapPWM,
			Feature:     "FEATURE_ELEVATION_CONTROL",
			Description: "elevation motor speed control"},

		// Encoder and pulse inputs need hardware interrupts.
		{Role: "az_incremental_encoder_a_pin", Capability: board.CapInterrupt,
			Feature: "FEATURE_AZ_POSITION_INCREMENTAL_ENCODER"},
		{Role: "az_incremental_encoder_b_pin", Capability: board.CapInterrupt,
			Feature: "FEATURE_AZ_POSITION_INCREMENTAL_ENCODER"},
		{Role: "el_incremental_encoder_a_pin", Capability: board.CapInterrupt,
			Feature: "FEATURE_EL_POSITION_INCREMENTAL_ENCODER"},
		{Role: "el_incremental_encoder_b_pin", Capability: board.CapInterrupt,
			Feature: "FEATURE_EL_POSITION_INCREMENTAL_ENCODER"},
		{Role: "az_position_pulse_pin", Capability: board.CapInterrupt,
			Feature: "FEATURE_AZ_POSITION_PULSE_INPUT"},
		{Role: "el_position_pulse_pin", Capability: board.CapInterrupt,
			Feature: "FEATURE_EL_POSITION_PULSE_INPUT"},

		// Potentiometer position sensing needs analog inputs.
		{Role: "rotator_analog_az", Capability: board.CapAnalog,
			Feature:     "FEATURE_AZ_POSITION_POTENTIOMETER",
			Description: "azimuth position potentiometer"},
		{Role: "rotator_analog_el", Capability: board.CapAnalog,
			Feature:     "FEATURE_EL_POSITION_POTENTIOMETER",
			Description: "elevation position potentiometer"},

		// Plain digital control lines; no capability requirement, listed
		// so the collision check knows their owning features.
		{Role: "rotate_cw"},
		{Role: "rotate_ccw"},
		{Role: "rotate_up", Feature: "FEATURE_ELEVATION_CONTROL"},
		{Role: "rotate_down", Feature: "FEATURE_ELEVATION_CONTROL"},
		{Role: "brake_az"},
		{Role: "brake_el", Feature: "FEATURE_ELEVATION_CONTROL"},

		// Serial master/slave link legitimately sits on the serial pins.
		{Role: "remote_unit_rx", Feature: "FEATURE_MASTER_WITH_SERIAL_SLAVE", Owns: "serial"},
		{Role: "remote_unit_tx", Feature: "FEATURE_MASTER_WITH_SERIAL_SLAVE", Owns: "serial"},
	})
	if err != nil {
		// The table above is static; an error here is a programming
		// mistake, not runtime input.
		panic(err)
	}
	return reqs
}
