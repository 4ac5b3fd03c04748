package systikki

import (
	"fmt"
	"math/bits"
	"time"
)

//ClockSource selects what drives the counter
type ClockSource byte

const (
	CLKprocessor ClockSource = iota
	CLKexternal
)

func (c ClockSource) bits() uint32 {
	if c == CLKprocessor {
		return CSR_CLKSOURCE
	}
	return 0
}

type Config struct {
	Reload uint32
	Clock  ClockSource
}

// Validate checks reload range. Nothing is written to hardware
func (c Config) Validate() error {
	if MAXRELOAD < c.Reload {
		return fmt.Errorf("reload %#x (max %#x): %w", c.Reload, MAXRELOAD, ErrReloadRange)
	}
	if c.Clock != CLKprocessor && c.Clock != CLKexternal {
		return fmt.Errorf("clock source %d: %w", byte(c.Clock), ErrClockSource)
	}
	return nil
}

type Calibration struct {
	TenMs uint32 //Reload for 10ms, 0 when not known
	Skew  bool   //TENMS not exact
	NoRef bool   //No external reference clock
}

//SysTick is driver over RegisterBank. Only one goroutine may use it
type SysTick struct {
	bank RegisterBank
}

func NewSysTick(bank RegisterBank) *SysTick {
	return &SysTick{bank: bank}
}

// Init starts the counter from processor clock with given reload.
// Reload over 24 bits is rejected before any register is written.
func (p *SysTick) Init(reload uint32) error {
	return p.Configure(Config{Reload: reload, Clock: CLKprocessor})
}

/*
Configure programs SysTick in the order the hardware needs:
disable, clear current (also clears COUNTFLAG), set reload, enable.
*/
func (p *SysTick) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	p.bank.Store32(CSR, 0)
	p.bank.Store32(CVR, 0)
	p.bank.Store32(RVR, cfg.Reload)
	p.bank.Store32(CSR, CSR_ENABLE|cfg.Clock.bits())
	return nil
}

// HasElapsed reports COUNTFLAG. Reading CSR clears the flag on hardware so
// each underflow is seen once.
func (p *SysTick) HasElapsed() bool {
	return p.bank.Load32(CSR)&CSR_COUNTFLAG != 0
}

//Current is live counter value. Does not touch CSR
func (p *SysTick) Current() uint32 {
	return p.bank.Load32(CVR) & MAXRELOAD
}

//Reload is the programmed reload value. Does not touch CSR
func (p *SysTick) Reload() uint32 {
	return p.bank.Load32(RVR) & MAXRELOAD
}

func (p *SysTick) Calibration() Calibration {
	v := p.bank.Load32(CALIB)
	return Calibration{
		TenMs: v & CALIB_TENMS_MASK,
		Skew:  v&CALIB_SKEW != 0,
		NoRef: v&CALIB_NOREF != 0,
	}
}

/*
ReloadFor calculates reload for wanted period when counter runs at clockHz.
Counter period is reload+1 clocks, so one second at 16MHz is 15999999.
*/
func ReloadFor(clockHz uint32, period time.Duration) (uint32, error) {
	if clockHz == 0 {
		return 0, ErrNoClock
	}
	if period <= 0 {
		return 0, fmt.Errorf("period %v: %w", period, ErrPeriodTooShort)
	}
	//128bit product. Quotient fits 64 bits only when hi < 1e9, and then it
	//is far over 24 bits anyway
	hi, lo := bits.Mul64(uint64(clockHz), uint64(period.Nanoseconds()))
	if uint64(time.Second) <= hi {
		return 0, fmt.Errorf("period %v at %d Hz: %w", period, clockHz, ErrReloadRange)
	}
	clocks, _ := bits.Div64(hi, lo, uint64(time.Second))
	if clocks == 0 {
		return 0, fmt.Errorf("period %v at %d Hz: %w", period, clockHz, ErrPeriodTooShort)
	}
	if uint64(MAXRELOAD) < clocks-1 {
		return 0, fmt.Errorf("period %v at %d Hz needs reload %#x (max %#x): %w", period, clockHz, clocks-1, MAXRELOAD, ErrReloadRange)
	}
	return uint32(clocks - 1), nil
}

// PeriodOf is inverse of ReloadFor
func PeriodOf(clockHz uint32, reload uint32) time.Duration {
	if clockHz == 0 {
		return 0
	}
	return time.Duration((uint64(reload) + 1) * uint64(time.Second) / uint64(clockHz))
}
