// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// lm75 reads the temperature from an LM75 or PCT2075 sensor, once or
// continuously.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/periph-community/lm75"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

func mainImpl() error {
	busName := flag.String("bus", "", "I²C bus name, empty for the first available")
	addr := flag.Uint("addr", uint(lm75.BaseAddress), "device address")
	pct := flag.Bool("pct2075", false, "device is a PCT2075")
	interval := flag.Duration("interval", 0, "poll continuously at this interval")
	flag.Parse()

	if _, err := host.Init(); err != nil {
		return err
	}
	b, err := i2creg.Open(*busName)
	if err != nil {
		return err
	}
	defer b.Close()

	opts := lm75.Opts{Addr: uint16(*addr)}
	if *pct {
		opts.Variant = lm75.PCT2075
	}
	d, err := lm75.NewI2C(b, &opts)
	if err != nil {
		return err
	}

	if *interval == 0 {
		e := physic.Env{}
		if err := d.Sense(&e); err != nil {
			return err
		}
		fmt.Println(e.Temperature)
		return nil
	}

	ch, err := d.SenseContinuous(*interval)
	if err != nil {
		return err
	}
	defer d.Halt()
	for e := range ch {
		fmt.Println(e.Temperature)
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		log.Fatalf("lm75: %v", err)
	}
}
