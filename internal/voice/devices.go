package voice

import (
	"os"
	"strings"
)

// testDevicesEnv lets tests and CI supply a fake device list without audio
// hardware. When set (even to the empty string), enumeration is bypassed.
const testDevicesEnv = "VOICETERM_TEST_DEVICES"

// EnumerateDevices is the platform audio enumeration hook. The default
// implementation reports no devices; real builds install one from the
// audio layer.
var EnumerateDevices = func() ([]string, error) {
	return nil, nil
}

// ListInputDevices returns the available audio input device names.
func ListInputDevices() ([]string, error) {
	if raw, ok := os.LookupEnv(testDevicesEnv); ok {
		var devices []string
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				devices = append(devices, name)
			}
		}
		return devices, nil
	}
	return EnumerateDevices()
}
