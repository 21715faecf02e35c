package voice

import (
	"math"
	"testing"
)

func TestRMSdBEmptyReturnsFloor(t *testing.T) {
	if got := RMSdB(nil); got != MeterFloorDB {
		t.Errorf("RMSdB(nil) = %v, want %v", got, MeterFloorDB)
	}
}

func TestRMSdBMatchesKnownAmplitude(t *testing.T) {
	samples := make([]float32, 64)
	for i := range samples {
		samples[i] = 0.5
	}
	want := 20 * math.Log10(0.5)
	if got := RMSdB(samples); math.Abs(got-want) > 0.01 {
		t.Errorf("RMSdB = %v, want %v", got, want)
	}
}

func TestPeakdBEmptyReturnsFloor(t *testing.T) {
	if got := PeakdB(nil); got != MeterFloorDB {
		t.Errorf("PeakdB(nil) = %v, want %v", got, MeterFloorDB)
	}
}

func TestPeakdBTracksAbsoluteMax(t *testing.T) {
	samples := []float32{-0.25, 0.75, -0.5}
	want := 20 * math.Log10(0.75)
	if got := PeakdB(samples); math.Abs(got-want) > 0.01 {
		t.Errorf("PeakdB = %v, want %v", got, want)
	}
}

func TestSilenceClampsAtFloorMath(t *testing.T) {
	samples := make([]float32, 32) // all zero
	if got := RMSdB(samples); got > -100 {
		t.Errorf("silence RMS = %v, want very low", got)
	}
}

func TestUsingNativePipelineRequiresBoth(t *testing.T) {
	tests := []struct {
		transcriber, recorder, want bool
	}{
		{false, false, false},
		{true, false, false},
		{false, true, false},
		{true, true, true},
	}
	for _, tt := range tests {
		if got := UsingNativePipeline(tt.transcriber, tt.recorder); got != tt.want {
			t.Errorf("UsingNativePipeline(%v, %v) = %v", tt.transcriber, tt.recorder, got)
		}
	}
}
