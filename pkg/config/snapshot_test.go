package config

import "testing"

const sampleDocument = `
board: arduino_mega_2560
features:
  - FEATURE_YAESU_EMULATION
  - FEATURE_AZ_POSITION_POTENTIOMETER
options:
  - OPTION_EL_MANUAL_ROTATE_LIMITS
pins:
  rotate_cw: 6
  rotate_ccw: 7
  rotator_analog_az: A0
  brake_az: "0"
settings:
  AZIMUTH_STARTING_POINT_DEFAULT: 180
`

func TestParseDocument(t *testing.T) {
	s, err := Parse([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if s.Board != "arduino_mega_2560" {
		t.Errorf("Board = %q", s.Board)
	}
	if !s.HasFeature("FEATURE_YAESU_EMULATION") {
		t.Error("expected FEATURE_YAESU_EMULATION active")
	}
	if !s.HasOption("OPTION_EL_MANUAL_ROTATE_LIMITS") {
		t.Error("expected option active")
	}
	if s.Pins["rotate_cw"] != Digital(6) {
		t.Errorf("rotate_cw = %v", s.Pins["rotate_cw"])
	}
	if s.Pins["rotator_analog_az"] != Analog(0) {
		t.Errorf("rotator_analog_az = %v", s.Pins["rotator_analog_az"])
	}
	if !s.Pins["brake_az"].IsDisabled() {
		t.Error("brake_az should be disabled")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	s, err := Parse([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	data, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("re-Parse failed: %v", err)
	}
	if back.Pins["rotate_cw"] != Digital(6) || !back.Pins["brake_az"].IsDisabled() {
		t.Errorf("pins did not survive round trip: %v", back.Pins)
	}
	if len(back.Features) != len(s.Features) {
		t.Errorf("features did not survive round trip: %v", back.Features)
	}
}

func TestEnableDisableIdempotent(t *testing.T) {
	s := New()
	s.EnableFeature("FEATURE_CLOCK")
	s.EnableFeature("FEATURE_CLOCK")
	if len(s.Features) != 1 {
		t.Errorf("double enable produced %v", s.Features)
	}

	s.EnableFeature("OPTION_TIME_SERIAL_PORT")
	if len(s.Options) != 1 || len(s.Features) != 1 {
		t.Errorf("OPTION_ identifier landed wrong: features=%v options=%v", s.Features, s.Options)
	}

	s.DisableFeature("FEATURE_CLOCK")
	s.DisableFeature("FEATURE_CLOCK")
	if len(s.Features) != 0 {
		t.Errorf("double disable produced %v", s.Features)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := New()
	s.EnableFeature("FEATURE_CLOCK")
	s.AssignPin("rotate_cw", Digital(6))

	c := s.Clone()
	c.DisableFeature("FEATURE_CLOCK")
	c.AssignPin("rotate_cw", Digital(8))

	if !s.HasFeature("FEATURE_CLOCK") {
		t.Error("clone mutation leaked into original features")
	}
	if s.Pins["rotate_cw"] != Digital(6) {
		t.Error("clone mutation leaked into original pins")
	}
}

func TestSummarize(t *testing.T) {
	s := New()
	s.EnableFeature("FEATURE_YAESU_EMULATION")
	s.EnableFeature("FEATURE_ELEVATION_CONTROL")
	s.EnableFeature("FEATURE_AZ_POSITION_POTENTIOMETER")
	s.EnableFeature("FEATURE_EL_POSITION_POTENTIOMETER")

	sum := s.Summarize()
	if sum.Protocol != "FEATURE_YAESU_EMULATION" {
		t.Errorf("Protocol = %q", sum.Protocol)
	}
	if sum.AzSensor != "FEATURE_AZ_POSITION_POTENTIOMETER" {
		t.Errorf("AzSensor = %q", sum.AzSensor)
	}
	if sum.ElSensor != "FEATURE_EL_POSITION_POTENTIOMETER" {
		t.Errorf("ElSensor = %q", sum.ElSensor)
	}
	if !sum.HasElevation {
		t.Error("HasElevation = false")
	}
}
