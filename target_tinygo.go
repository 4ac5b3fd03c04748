//go:build tinygo && cortexm

package systikki

import (
	"device/arm"
	"runtime/volatile"
	"unsafe"
)

//VolatileBank accesses SysTick at its real address
type VolatileBank struct {
	base uintptr
}

//SystemTick is the one SysTick of the running core
var SystemTick = &VolatileBank{base: uintptr(SYSTICKBASE)}

func (p *VolatileBank) reg(off Offset) *uint32 {
	if !off.Valid() {
		panic(ErrBadOffset)
	}
	return (*uint32)(unsafe.Pointer(p.base + uintptr(off)))
}

func (p *VolatileBank) Load32(off Offset) uint32 {
	return volatile.LoadUint32(p.reg(off))
}

func (p *VolatileBank) Store32(off Offset, value uint32) {
	volatile.StoreUint32(p.reg(off), value)
}

// lock up forever, like runtime abort
var park = func() {
	arm.DisableInterrupts()
	for {
		arm.Asm("wfi")
	}
}
