/*
simulated
Implements RegisterBank with SysTick hardware behaviour. For testing software
and for running the firmware on a host.

Counter model is compressed: the tick that brings CVR to zero also sets
COUNTFLAG and reloads, so with reload N an event comes every N ticks.
*/
package systikki

import "sync"

//Access is one recorded store
type Access struct {
	Reg   Offset
	Value uint32
}

//Registers is architectural SysTick state
type Registers struct {
	CSR   uint32 //Without COUNTFLAG
	RVR   uint32
	CVR   uint32
	CALIB uint32
	Flag  bool //Pending COUNTFLAG
}

type SimulatedBank struct {
	mu     sync.Mutex //Tick may come from other goroutine than firmware
	regs   Registers
	writes []Access
}

func NewSimulatedBank() *SimulatedBank {
	return &SimulatedBank{}
}

//SetCalibration sets read only CALIB content, as chip vendor would
func (p *SimulatedBank) SetCalibration(v uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.regs.CALIB = v
}

func (p *SimulatedBank) Load32(off Offset) uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch off {
	case CSR:
		v := p.regs.CSR
		if p.regs.Flag {
			v |= CSR_COUNTFLAG
		}
		p.regs.Flag = false //read clears
		return v
	case RVR:
		return p.regs.RVR
	case CVR:
		return p.regs.CVR
	case CALIB:
		return p.regs.CALIB
	}
	panic(ErrBadOffset)
}

func (p *SimulatedBank) Store32(off Offset, value uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writes = append(p.writes, Access{Reg: off, Value: value})
	switch off {
	case CSR:
		p.regs.CSR = value & (CSR_ENABLE | CSR_TICKINT | CSR_CLKSOURCE)
		if p.regs.CSR&CSR_ENABLE != 0 && p.regs.CVR == 0 {
			p.regs.CVR = p.regs.RVR
		}
	case RVR:
		p.regs.RVR = value & MAXRELOAD
	case CVR:
		p.regs.CVR = 0
		p.regs.Flag = false
	case CALIB:
		//read only
	default:
		panic(ErrBadOffset)
	}
}

//Tick advances counter by one clock. Returns true when counter wrapped
func (p *SimulatedBank) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tick()
}

//Advance runs n ticks, returns number of wraps
func (p *SimulatedBank) Advance(n uint64) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	wraps := uint64(0)
	for i := uint64(0); i < n; i++ {
		if p.tick() {
			wraps++
		}
	}
	return wraps
}

func (p *SimulatedBank) tick() bool {
	if p.regs.CSR&CSR_ENABLE == 0 {
		return false
	}
	if p.regs.CVR == 0 {
		//Reload of zero keeps counter stopped
		p.regs.CVR = p.regs.RVR
		return false
	}
	p.regs.CVR--
	if p.regs.CVR != 0 {
		return false
	}
	p.regs.Flag = true
	p.regs.CVR = p.regs.RVR
	return true
}

//Writes returns copy of store log
func (p *SimulatedBank) Writes() []Access {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Access(nil), p.writes...)
}

func (p *SimulatedBank) ResetLog() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writes = nil
}

//Snapshot reads state without side effects. COUNTFLAG stays pending
func (p *SimulatedBank) Snapshot() Registers {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.regs
}
