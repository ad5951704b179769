// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lm75

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Variant selects the exact part on the bus.
type Variant int

const (
	// LM75 is the base part, reading 9 bits in 0.5°C steps.
	LM75 Variant = iota
	// PCT2075 reads 11 bits in 0.125°C steps and adds a programmable
	// conversion period.
	PCT2075
)

func (v Variant) String() string {
	if v == PCT2075 {
		return "pct2075"
	}
	return "lm75"
}

func (v Variant) resolution() resolution {
	if v == PCT2075 {
		return res11Bit
	}
	return res9Bit
}

// FaultQueue is the number of consecutive threshold violations required
// before the OS output asserts.
type FaultQueue byte

const (
	FaultQueue1 FaultQueue = iota
	FaultQueue2
	FaultQueue4
	FaultQueue6
)

// OSPolarity is the active level of the OS output.
type OSPolarity byte

const (
	ActiveLow OSPolarity = iota
	ActiveHigh
)

// OSMode selects how the OS output behaves once asserted.
type OSMode byte

const (
	// Comparator releases OS on its own once the temperature falls below
	// the hysteresis threshold.
	Comparator OSMode = iota
	// Interrupt keeps OS asserted until any register is read.
	Interrupt
)

const (
	// Addresses of registers to read/write.
	_REGISTER_TEMPERATURE   byte = 0x00
	_REGISTER_CONFIGURATION byte = 0x01
	_REGISTER_T_HYST        byte = 0x02
	_REGISTER_T_OS          byte = 0x03
	_REGISTER_T_IDLE        byte = 0x04 // PCT2075 only

	// Configuration register bits.
	_SHUTDOWN_BIT     byte = 0b0000_0001
	_COMP_INT_BIT     byte = 0b0000_0010
	_OS_POLARITY_BIT  byte = 0b0000_0100
	_FAULT_QUEUE0_BIT byte = 0b0000_1000
	_FAULT_QUEUE1_BIT byte = 0b0001_0000

	// MinimumTemperature is the lowest accepted threshold value.
	MinimumTemperature physic.Temperature = physic.ZeroCelsius - 55*physic.Kelvin
	// MaximumTemperature is the highest accepted threshold value.
	MaximumTemperature physic.Temperature = physic.ZeroCelsius + 125*physic.Kelvin
)

// config is the cached copy of the 8 bit configuration register.
type config byte

func (c config) withHigh(mask byte) config { return c | config(mask) }
func (c config) withLow(mask byte) config  { return c &^ config(mask) }

// Opts represents configurable options for the sensor.
type Opts struct {
	// Addr is the 7 bit bus address. Use PinAddr for pin-strapped
	// addresses. 0 selects BaseAddress.
	Addr uint16
	// Variant is the exact part on the bus.
	Variant Variant
}

// DefaultOpts is an LM75 with all three address pins strapped low.
var DefaultOpts = Opts{Addr: BaseAddress, Variant: LM75}

// Dev represents an LM75 or PCT2075 sensor.
type Dev struct {
	d    *i2c.Dev
	opts Opts
	mu   sync.Mutex
	// config shadows the configuration register. It is committed only
	// after the corresponding bus write succeeded.
	config config
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewI2C returns an object that communicates over I²C to an LM75 family
// temperature sensor. The Opts can be nil. No bus transaction is issued; the
// device powers up enabled, in comparator mode, with TOS=80°C and THYST=75°C.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	addr := opts.Addr
	if addr == 0 {
		addr = BaseAddress
	}
	return &Dev{d: &i2c.Dev{Bus: b, Addr: addr}, opts: *opts}, nil
}

// Enable clears the shutdown bit, resuming conversions. This is the power-up
// state.
func (d *Dev) Enable() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeConfig(d.config.withLow(_SHUTDOWN_BIT))
}

// Disable sets the shutdown bit. The device keeps responding on the bus but
// stops converting.
func (d *Dev) Disable() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeConfig(d.config.withHigh(_SHUTDOWN_BIT))
}

// SetFaultQueue sets the number of consecutive threshold violations required
// before the OS output asserts.
func (d *Dev) SetFaultQueue(fq FaultQueue) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := d.config.withLow(_FAULT_QUEUE1_BIT | _FAULT_QUEUE0_BIT)
	switch fq {
	case FaultQueue2:
		c = c.withHigh(_FAULT_QUEUE0_BIT)
	case FaultQueue4:
		c = c.withHigh(_FAULT_QUEUE1_BIT)
	case FaultQueue6:
		c = c.withHigh(_FAULT_QUEUE1_BIT | _FAULT_QUEUE0_BIT)
	}
	return d.writeConfig(c)
}

// SetOSPolarity sets the active level of the OS output.
func (d *Dev) SetOSPolarity(p OSPolarity) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p == ActiveHigh {
		return d.writeConfig(d.config.withHigh(_OS_POLARITY_BIT))
	}
	return d.writeConfig(d.config.withLow(_OS_POLARITY_BIT))
}

// SetOSMode sets the OS output operation mode.
func (d *Dev) SetOSMode(m OSMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if m == Interrupt {
		return d.writeConfig(d.config.withHigh(_COMP_INT_BIT))
	}
	return d.writeConfig(d.config.withLow(_COMP_INT_BIT))
}

// SetOSTemperature sets the overtemperature shutdown threshold. The value
// must be between MinimumTemperature and MaximumTemperature.
func (d *Dev) SetOSTemperature(t physic.Temperature) error {
	return d.writeThreshold(_REGISTER_T_OS, t)
}

// SetHysteresisTemperature sets the temperature below which the OS condition
// clears. The value must be between MinimumTemperature and
// MaximumTemperature.
func (d *Dev) SetHysteresisTemperature(t physic.Temperature) error {
	return d.writeThreshold(_REGISTER_T_HYST, t)
}

// OSTemperature reads back the overtemperature shutdown threshold.
func (d *Dev) OSTemperature() (physic.Temperature, error) {
	return d.readTemperature(_REGISTER_T_OS)
}

// HysteresisTemperature reads back the hysteresis threshold.
func (d *Dev) HysteresisTemperature() (physic.Temperature, error) {
	return d.readTemperature(_REGISTER_T_HYST)
}

// SetSamplePeriod sets the PCT2075 conversion period. The period must be a
// multiple of 100ms between MinSamplePeriod and MaxSamplePeriod.
func (d *Dev) SetSamplePeriod(period time.Duration) error {
	if d.opts.Variant != PCT2075 {
		return &NotSupportedError{Op: "SetSamplePeriod"}
	}
	if period < MinSamplePeriod || period > MaxSamplePeriod || period%samplePeriodStep != 0 {
		return &InvalidSamplePeriodError{Period: period}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.d.Tx([]byte{_REGISTER_T_IDLE, samplePeriodToRegister(period)}, nil)
}

// SamplePeriod reads the PCT2075 conversion period.
func (d *Dev) SamplePeriod() (time.Duration, error) {
	if d.opts.Variant != PCT2075 {
		return 0, &NotSupportedError{Op: "SamplePeriod"}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	r := make([]byte, 1)
	if err := d.d.Tx([]byte{_REGISTER_T_IDLE}, r); err != nil {
		return 0, err
	}
	return registerToSamplePeriod(r[0]), nil
}

// Sense reads the temperature register and writes the decoded value to env.
// Implements physic.SenseEnv.
func (d *Dev) Sense(e *physic.Env) error {
	t, err := d.readTemperature(_REGISTER_TEMPERATURE)
	if err != nil {
		return err
	}
	e.Temperature = t
	return nil
}

// SenseContinuous reads the temperature at the given interval until Halt is
// called. Implements physic.SenseEnv.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return nil, errors.New("lm75: already sensing continuously")
	}
	d.stop = make(chan struct{})
	d.wg.Add(1)
	sensing := make(chan physic.Env)
	go func(stop <-chan struct{}) {
		defer d.wg.Done()
		defer close(sensing)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				e := physic.Env{}
				if err := d.Sense(&e); err != nil {
					continue
				}
				select {
				case sensing <- e:
				case <-stop:
					return
				}
			}
		}
	}(d.stop)
	return sensing, nil
}

// Precision returns the smallest temperature step the part resolves, 0.5°C
// for the LM75 and 0.125°C for the PCT2075. Implements physic.SenseEnv.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = d.opts.Variant.resolution().step
	e.Pressure = 0
	e.Humidity = 0
}

// Halt stops a SenseContinuous reader. It does not touch the shutdown bit,
// use Disable for that. Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	if d.stop == nil {
		d.mu.Unlock()
		return nil
	}
	close(d.stop)
	d.stop = nil
	d.mu.Unlock()
	d.wg.Wait()
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s: %s", d.opts.Variant, d.d.String())
}

// writeThreshold validates and writes one of the two threshold registers.
// Validation happens before any bus traffic.
func (d *Dev) writeThreshold(reg byte, t physic.Temperature) error {
	if t < MinimumTemperature || t > MaximumTemperature {
		return &InvalidTemperatureError{Temperature: t}
	}
	msb, lsb := temperatureToRegister(t, d.opts.Variant.resolution())
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.d.Tx([]byte{reg, msb, lsb}, nil)
}

func (d *Dev) readTemperature(reg byte) (physic.Temperature, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r := make([]byte, 2)
	if err := d.d.Tx([]byte{reg}, r); err != nil {
		return 0, err
	}
	return registerToTemperature(r[0], r[1], d.opts.Variant.resolution()), nil
}

// writeConfig issues the whole byte configuration write and commits the cache
// only after the bus transaction succeeded. Callers hold d.mu.
func (d *Dev) writeConfig(c config) error {
	if err := d.d.Tx([]byte{_REGISTER_CONFIGURATION, byte(c)}, nil); err != nil {
		return err
	}
	d.config = c
	return nil
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
