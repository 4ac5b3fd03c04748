/*
Systikki is a minimal SysTick demo for ARM Cortex-M.

features
-SysTick setup for a fixed period, polled COUNTFLAG
-Startup and tick messages on a debug console (semihosting on target)
-Register access behind RegisterBank
	-volatile on target (tinygo build)
	-mmap of /dev/mem or a file on linux hosts
	-simulated SysTick for tests and the host tool

Register layout from ARMv7-M Architecture Reference Manual, B3.3 "The system timer, SysTick"

Design principle:
0) Every register access is one 32 bit load or store at exact offset. No caching, no merging
1) Configuration errors are found before touching hardware
2) Unrecoverable errors halt. No retry, no restart

*/

package systikki

import (
	"errors"
	"fmt"
	"sync/atomic"
)

//Offset is register offset from SysTick base, in bytes
type Offset uint32

func (o Offset) String() string {
	switch o {
	case CSR:
		return "CSR"
	case RVR:
		return "RVR"
	case CVR:
		return "CVR"
	case CALIB:
		return "CALIB"
	}
	return fmt.Sprintf("Offset(%#x)", uint32(o))
}

// Valid reports whether o is a word aligned offset inside the SysTick window
func (o Offset) Valid() bool {
	return o%4 == 0 && o < SYSTICKLEN
}

//RegisterBank is interface for real SysTick hardware or fake.
//Implementations must do exactly one 32bit access per call.
type RegisterBank interface {
	Load32(off Offset) uint32
	Store32(off Offset, value uint32)
}

var (
	ErrReloadRange    = errors.New("reload value exceeds 24 bits")
	ErrPeriodTooShort = errors.New("period is shorter than one clock")
	ErrNoClock        = errors.New("clock frequency is zero")
	ErrBadOffset      = errors.New("register offset outside SysTick window")
	ErrClockSource    = errors.New("unknown clock source")
)

//staticData sits in .data for whole program lifetime
var staticData uint32 = 0xDEADBEEF

//ReadStaticData loads staticData with an atomic load. Result is observable so read is kept in the binary
func ReadStaticData() uint32 {
	return atomic.LoadUint32(&staticData)
}
