// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// Package lm75 provides a driver for the LM75 I²C temperature sensor and
// thermal watchdog, and for the NXP PCT2075 variant. This driver is also
// compatible with the LM75A, LM75B, LM75C, MAX7500, DS75LV and similar parts
// that share the LM75 register map.
//
// Range: -55°C - 125°C
//
// Resolution: 0.5°C (LM75), 0.125°C (PCT2075)
//
// The sensor asserts its open-drain OS output when the temperature rises
// above the overtemperature shutdown threshold and releases it when the
// temperature falls below the hysteresis threshold. Both thresholds, the OS
// pin behavior and the fault queue depth are programmable through this
// driver. The PCT2075 additionally allows programming the conversion period.
//
// For detailed information, refer to the [LM75 datasheet] and the
// [PCT2075 datasheet].
//
// A command line reader is available in cmd/lm75.
//
// [LM75 datasheet]: https://datasheets.maximintegrated.com/en/ds/LM75.pdf
// [PCT2075 datasheet]: https://www.nxp.com/docs/en/data-sheet/PCT2075.pdf
package lm75
