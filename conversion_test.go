// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lm75

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/physic"
)

func milliCelsius(m int64) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(m)*physic.MilliKelvin
}

func TestRegisterToTemperature9Bit(t *testing.T) {
	// The unused bits of the LSB must be ignored, so the table flips them
	// on and off.
	tests := []struct {
		msb, lsb byte
		want     physic.Temperature
	}{
		{0b0111_1101, 0b0101_1010, milliCelsius(125000)},
		{0b0001_1001, 0b0101_1010, milliCelsius(25000)},
		{0b1110_0111, 0b0101_1010, milliCelsius(-25000)},
		{0b1100_1001, 0b0101_1010, milliCelsius(-55000)},
		{0b0000_0000, 0b0101_1010, milliCelsius(0)},
		{0b0000_0000, 0b1101_1010, milliCelsius(500)},
		{0b0000_0001, 0b0101_1010, milliCelsius(1000)},
		{0b0100_1011, 0b0101_1010, milliCelsius(75000)},
		{0b0101_0000, 0b0101_1010, milliCelsius(80000)},
		{0b0111_1111, 0b1101_1010, milliCelsius(127500)},
		{0b1111_1111, 0b1101_1010, milliCelsius(-500)},
		{0b1111_1111, 0b0101_1010, milliCelsius(-1000)},
		{0b1111_1101, 0b1101_1010, milliCelsius(-2500)},
		{0b1000_0000, 0b1101_1010, milliCelsius(-127500)},
		{0b1000_0000, 0b0101_1010, milliCelsius(-128000)},
	}
	for _, tt := range tests {
		if got := registerToTemperature(tt.msb, tt.lsb, res9Bit); got != tt.want {
			t.Errorf("registerToTemperature(%#02x, %#02x) = %s, want %s", tt.msb, tt.lsb, got, tt.want)
		}
	}
}

func TestRegisterToTemperature11Bit(t *testing.T) {
	tests := []struct {
		msb, lsb byte
		want     physic.Temperature
	}{
		{0b0000_0000, 0b0110_0000, milliCelsius(375)},
		{0b0000_0000, 0b0001_1111, milliCelsius(0)}, // only the top 3 bits count
		{0b1110_0111, 0b1010_0000, milliCelsius(-24375)},
		{0b0111_1101, 0b1110_0000, milliCelsius(125875)},
		{0b1111_1111, 0b0010_0000, milliCelsius(-875)},
		{0b1000_0000, 0b0000_0000, milliCelsius(-128000)},
	}
	for _, tt := range tests {
		if got := registerToTemperature(tt.msb, tt.lsb, res11Bit); got != tt.want {
			t.Errorf("registerToTemperature(%#02x, %#02x) = %s, want %s", tt.msb, tt.lsb, got, tt.want)
		}
	}
}

// TestQuantize checks the quantization policy against the reference table:
// truncation toward zero on the step grid, with the fraction reported as a
// positive step count on top of the two's complement integer part.
func TestQuantize(t *testing.T) {
	tests := []struct {
		temp      physic.Temperature
		msb, frac byte
	}{
		{milliCelsius(2400), 0b0000_0010, 0},
		{milliCelsius(2600), 0b0000_0010, 1},
		{milliCelsius(-2400), 0b1111_1110, 0},
		{milliCelsius(-2600), 0b1111_1101, 1},
		{milliCelsius(125000), 0b0111_1101, 0},
		{milliCelsius(25000), 0b0001_1001, 0},
		{milliCelsius(-25000), 0b1110_0111, 0},
		{milliCelsius(-55000), 0b1100_1001, 0},
		{milliCelsius(0), 0b0000_0000, 0},
		{milliCelsius(500), 0b0000_0000, 1},
		{milliCelsius(75000), 0b0100_1011, 0},
		{milliCelsius(80000), 0b0101_0000, 0},
		{milliCelsius(127500), 0b0111_1111, 1},
		{milliCelsius(-500), 0b1111_1111, 1},
		{milliCelsius(-1000), 0b1111_1111, 0},
		{milliCelsius(-127500), 0b1000_0000, 1},
		{milliCelsius(-128000), 0b1000_0000, 0},
	}
	for _, tt := range tests {
		msb, frac := quantize(tt.temp, res9Bit)
		if msb != tt.msb || frac != tt.frac {
			t.Errorf("quantize(%s) = (%#02x, %d), want (%#02x, %d)", tt.temp, msb, frac, tt.msb, tt.frac)
		}
	}

	tests11 := []struct {
		temp      physic.Temperature
		msb, frac byte
	}{
		{milliCelsius(125), 0b0000_0000, 1},
		{milliCelsius(-125), 0b1111_1111, 7},
		{milliCelsius(99875), 0b0110_0011, 7},
		{milliCelsius(2400), 0b0000_0010, 3}, // 2.4 truncates to 2.375
		{milliCelsius(-128000), 0b1000_0000, 0},
	}
	for _, tt := range tests11 {
		msb, frac := quantize(tt.temp, res11Bit)
		if msb != tt.msb || frac != tt.frac {
			t.Errorf("quantize(%s) = (%#02x, %d), want (%#02x, %d)", tt.temp, msb, frac, tt.msb, tt.frac)
		}
	}
}

func TestTemperatureToRegister(t *testing.T) {
	tests := []struct {
		temp     physic.Temperature
		res      resolution
		msb, lsb byte
	}{
		{milliCelsius(500), res9Bit, 0b0000_0000, 0b1000_0000},
		{milliCelsius(-500), res9Bit, 0b1111_1111, 0b1000_0000},
		{milliCelsius(-128000), res9Bit, 0b1000_0000, 0b0000_0000},
		{milliCelsius(127500), res9Bit, 0b0111_1111, 0b1000_0000},
		{milliCelsius(375), res11Bit, 0b0000_0000, 0b0110_0000},
		{milliCelsius(-24375), res11Bit, 0b1110_0111, 0b1010_0000},
	}
	for _, tt := range tests {
		msb, lsb := temperatureToRegister(tt.temp, tt.res)
		if msb != tt.msb || lsb != tt.lsb {
			t.Errorf("temperatureToRegister(%s) = (%#02x, %#02x), want (%#02x, %#02x)", tt.temp, msb, lsb, tt.msb, tt.lsb)
		}
	}
}

// TestRegisterRoundTrip verifies decode then encode reproduces every register
// pattern whose LSB only carries in-mask fraction bits, at both resolutions.
func TestRegisterRoundTrip(t *testing.T) {
	for _, res := range []resolution{res9Bit, res11Bit} {
		for msb := 0; msb < 256; msb++ {
			for frac := byte(0); frac <= res.mask; frac++ {
				lsb := frac << res.shift
				temp := registerToTemperature(byte(msb), lsb, res)
				gotMSB, gotLSB := temperatureToRegister(temp, res)
				if gotMSB != byte(msb) || gotLSB != lsb {
					t.Fatalf("round trip of (%#02x, %#02x) via %s = (%#02x, %#02x)", msb, lsb, temp, gotMSB, gotLSB)
				}
			}
		}
	}
}

func TestSamplePeriodCodec(t *testing.T) {
	if got := registerToSamplePeriod(0b0001_1111); got != 3100*time.Millisecond {
		t.Errorf("registerToSamplePeriod(0x1f) = %s", got)
	}
	// Bits above [4:0] must be ignored.
	if got := registerToSamplePeriod(0b1111_1111); got != 3100*time.Millisecond {
		t.Errorf("registerToSamplePeriod(0xff) = %s", got)
	}
	if got := registerToSamplePeriod(0); got != 0 {
		t.Errorf("registerToSamplePeriod(0) = %s", got)
	}
	if got := samplePeriodToRegister(1500 * time.Millisecond); got != 0b0000_1111 {
		t.Errorf("samplePeriodToRegister(1.5s) = %#02x", got)
	}
	if got := samplePeriodToRegister(100 * time.Millisecond); got != 1 {
		t.Errorf("samplePeriodToRegister(100ms) = %#02x", got)
	}
	if got := samplePeriodToRegister(3100 * time.Millisecond); got != 0b0001_1111 {
		t.Errorf("samplePeriodToRegister(3.1s) = %#02x", got)
	}
}

func TestPinAddr(t *testing.T) {
	tests := []struct {
		a2, a1, a0 bool
		want       uint16
	}{
		{false, false, false, 0b100_1000},
		{false, false, true, 0b100_1001},
		{false, true, false, 0b100_1010},
		{true, false, false, 0b100_1100},
		{true, true, true, 0b100_1111},
	}
	for _, tt := range tests {
		if got := PinAddr(tt.a2, tt.a1, tt.a0); got != tt.want {
			t.Errorf("PinAddr(%t, %t, %t) = %#02x, want %#02x", tt.a2, tt.a1, tt.a0, got, tt.want)
		}
	}
	if PinAddr(false, false, false) != BaseAddress {
		t.Error("all pins low must resolve to BaseAddress")
	}
}
