package systikki

import (
	"fmt"
	"io"
)

//State of whole program
type State byte

const (
	Booting State = iota
	Polling
	Halted
)

func (s State) String() string {
	switch s {
	case Booting:
		return "booting"
	case Polling:
		return "polling"
	case Halted:
		return "halted"
	}
	return fmt.Sprintf("State(%d)", byte(s))
}

/*
Firmware is the demo program: greet, touch static data, start SysTick and
poll it forever.
Console is the debug channel. Write errors are ignored, there is nobody to tell.
*/
type Firmware struct {
	Console io.Writer
	Timer   *SysTick
	Reload  uint32

	state    State
	retained uint32
	err      error
}

//NewFirmware builds firmware with one second reload
func NewFirmware(console io.Writer, bank RegisterBank) *Firmware {
	return &Firmware{
		Console: console,
		Timer:   NewSysTick(bank),
		Reload:  OneSecondReload,
	}
}

func (p *Firmware) State() State {
	return p.state
}

//Retained is the static data value read during boot
func (p *Firmware) Retained() uint32 {
	return p.retained
}

//Err is what put firmware to Halted, nil otherwise
func (p *Firmware) Err() error {
	return p.err
}

/*
Boot runs one time setup and moves to Polling.
Any error moves to Halted and is returned. Boot is done only from Booting.
*/
func (p *Firmware) Boot() error {
	if p.state != Booting {
		return fmt.Errorf("boot in state %v", p.state)
	}
	fmt.Fprintln(p.Console, GreetingMessage)
	p.retained = ReadStaticData()

	if err := p.Timer.Init(p.Reload); err != nil {
		p.fail(fmt.Errorf("systick init: %w", err))
		return p.err
	}
	p.state = Polling
	return nil
}

//Poll is one round of main loop. True when period had elapsed
func (p *Firmware) Poll() bool {
	if p.state != Polling {
		return false
	}
	if !p.Timer.HasElapsed() {
		return false
	}
	//Real board would toggle LED here
	fmt.Fprintln(p.Console, TickMessage)
	return true
}

func (p *Firmware) fail(err error) {
	p.err = err
	p.state = Halted
}

//Reset is what reset handler calls. Never returns
func (p *Firmware) Reset() {
	if err := p.Boot(); err != nil {
		p.Halt()
	}
	for {
		p.Poll()
	}
}

//Halt parks CPU forever. No recovery
func (p *Firmware) Halt() {
	p.state = Halted
	park()
}
