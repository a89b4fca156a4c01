package config

import "strings"

// Summary captures the headline facts of a snapshot for display.
type Summary struct {
	Protocol     string
	AzSensor     string
	ElSensor     string
	HasElevation bool
	Display      string
	Features     int
	Options      int
	AssignedPins int
}

var protocolFeatures = []string{
	"FEATURE_YAESU_EMULATION",
	"FEATURE_EASYCOM_EMULATION",
	"FEATURE_DCU_1_EMULATION",
}

var displayFeatures = []string{
	"FEATURE_4_BIT_LCD_DISPLAY",
	"FEATURE_ADAFRUIT_I2C_LCD",
	"FEATURE_NEXTION_DISPLAY",
	"FEATURE_YWROBOT_I2C_DISPLAY",
}

// Summarize derives a Summary from the snapshot.
func (s *Snapshot) Summarize() Summary {
	sum := Summary{
		Features:     len(s.Features),
		Options:      len(s.Options),
		AssignedPins: len(s.AssignedRoles()),
		HasElevation: s.HasFeature("FEATURE_ELEVATION_CONTROL"),
	}

	for _, p := range protocolFeatures {
		if s.HasFeature(p) {
			sum.Protocol = p
			break
		}
	}
	for _, d := range displayFeatures {
		if s.HasFeature(d) {
			sum.Display = d
			break
		}
	}
	for _, f := range s.Features {
		if sum.AzSensor == "" && strings.HasPrefix(f, "FEATURE_AZ_POSITION_") {
			sum.AzSensor = f
		}
		if sum.ElSensor == "" && sum.HasElevation && strings.HasPrefix(f, "FEATURE_EL_POSITION_") {
			sum.ElSensor = f
		}
	}
	return sum
}
