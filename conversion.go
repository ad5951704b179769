// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lm75

import (
	"time"

	"periph.io/x/conn/v3/physic"
)

// BaseAddress is the bus address with the A2, A1 and A0 pins strapped low.
const BaseAddress uint16 = 0x48

// PinAddr returns the 7 bit bus address selected by the A2, A1 and A0
// address pin straps.
func PinAddr(a2, a1, a0 bool) uint16 {
	addr := BaseAddress
	if a2 {
		addr |= 1 << 2
	}
	if a1 {
		addr |= 1 << 1
	}
	if a0 {
		addr |= 1
	}
	return addr
}

// resolution describes how the fractional part of a temperature register is
// laid out in the LSB.
type resolution struct {
	shift uint               // position of the fraction bits within the LSB
	mask  byte               // fraction bit mask, after shifting
	step  physic.Temperature // value of one fraction step
}

var (
	res9Bit  = resolution{shift: 7, mask: 0x01, step: 500 * physic.MilliKelvin}
	res11Bit = resolution{shift: 5, mask: 0x07, step: 125 * physic.MilliKelvin}
)

// quantize truncates t toward zero onto the resolution's step grid and splits
// it into the two's complement integer part and a positive fraction step
// count.
func quantize(t physic.Temperature, res resolution) (byte, byte) {
	steps := int32((t - physic.ZeroCelsius) / res.step)
	perDegree := int32(physic.Kelvin / res.step)
	msb := steps / perDegree
	frac := steps % perDegree
	if frac < 0 {
		msb--
		frac += perDegree
	}
	return byte(int8(msb)), byte(frac)
}

// temperatureToRegister converts a temperature into the two byte register
// value used by the threshold registers.
func temperatureToRegister(t physic.Temperature, res resolution) (byte, byte) {
	msb, frac := quantize(t, res)
	return msb, frac << res.shift
}

// registerToTemperature converts a raw register pair. The MSB holds the
// integer part in two's complement, the top bits of the LSB add a positive
// fractional offset, so 0x80 with no fraction bits set is the true minimum
// of -128°C.
func registerToTemperature(msb, lsb byte, res resolution) physic.Temperature {
	frac := physic.Temperature((lsb>>res.shift)&res.mask) * res.step
	return physic.ZeroCelsius + physic.Temperature(int8(msb))*physic.Kelvin + frac
}

const (
	samplePeriodStep = 100 * time.Millisecond

	// MinSamplePeriod is the shortest conversion period the PCT2075 accepts.
	MinSamplePeriod = samplePeriodStep
	// MaxSamplePeriod is the longest conversion period the PCT2075 accepts.
	MaxSamplePeriod = 31 * samplePeriodStep

	// Bits [4:0] of the Tidle register hold the period in 100ms steps.
	sampleRateMask byte = 0x1f
)

func registerToSamplePeriod(b byte) time.Duration {
	return time.Duration(b&sampleRateMask) * samplePeriodStep
}

func samplePeriodToRegister(period time.Duration) byte {
	return byte(period / samplePeriodStep)
}
