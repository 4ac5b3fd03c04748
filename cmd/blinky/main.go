//go:build tinygo && cortexm

/*
blinky is the firmware image.

	tinygo build -target=cortex-m-qemu -o blinky.elf ./cmd/blinky

Vector table and reset vector come from tinygo cortex-m linker script, the
reset handler initializes memory and calls main. Debug output goes to the
target console, semihosting on cortex-m-qemu.
*/
package main

import (
	"os"

	"github.com/hjkoskel/systikki"
)

func main() {
	fw := systikki.NewFirmware(os.Stdout, systikki.SystemTick)
	fw.Reset()
}
