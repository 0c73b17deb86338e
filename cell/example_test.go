// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cell_test

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/flashmat/cell"
	"github.com/GermanBionicSystems/flashmat/packet"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use i2creg I²C bus registry to find the first available I²C bus.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	d, err := cell.NewI2C(b, &cell.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s\n", d)

	if err := d.SetTextParameters(packet.TextParameters{Color: packet.Color{R: 255, G: 127}, Fields: packet.TextColor}); err != nil {
		log.Fatal(err)
	}
	if err := d.SetText("Hello"); err != nil {
		log.Fatal(err)
	}
	if err := d.DrawText(); err != nil {
		log.Fatal(err)
	}
	if err := d.Swap(0); err != nil {
		log.Fatal(err)
	}
}
