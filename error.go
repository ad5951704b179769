// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lm75

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/physic"
)

// InvalidTemperatureError is returned when a requested threshold is outside
// the range the device accepts. No bus transaction is issued.
type InvalidTemperatureError struct {
	Temperature physic.Temperature
}

func (e *InvalidTemperatureError) Error() string {
	return fmt.Sprintf("lm75: threshold %s is outside the -55°C to 125°C range", e.Temperature)
}

// InvalidSamplePeriodError is returned when a requested conversion period is
// not a 100ms multiple between MinSamplePeriod and MaxSamplePeriod. No bus
// transaction is issued.
type InvalidSamplePeriodError struct {
	Period time.Duration
}

func (e *InvalidSamplePeriodError) Error() string {
	return fmt.Sprintf("lm75: sample period %s is not a 100ms multiple between %s and %s", e.Period, MinSamplePeriod, MaxSamplePeriod)
}

// NotSupportedError is returned when an operation requires the PCT2075
// variant.
type NotSupportedError struct {
	Op string
}

func (e *NotSupportedError) Error() string {
	return "lm75: " + e.Op + " requires the PCT2075 variant"
}
