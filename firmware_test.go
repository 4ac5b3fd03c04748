package systikki_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hjkoskel/systikki"
)

// recorder puts console lines and register stores into one ordered log
type recorder struct {
	sim    *systikki.SimulatedBank
	events []string
}

func (r *recorder) Write(b []byte) (int, error) {
	r.events = append(r.events, "console "+strings.TrimRight(string(b), "\n"))
	return len(b), nil
}

func (r *recorder) Load32(off systikki.Offset) uint32 {
	return r.sim.Load32(off)
}

func (r *recorder) Store32(off systikki.Offset, value uint32) {
	r.events = append(r.events, fmt.Sprintf("store %v=%#x", off, value))
	r.sim.Store32(off, value)
}

func TestStartupOrdering(t *testing.T) {
	rec := &recorder{sim: systikki.NewSimulatedBank()}
	fw := systikki.NewFirmware(rec, rec)
	fw.Reload = 3

	if err := fw.Boot(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 6; i++ {
		rec.sim.Tick()
		fw.Poll()
	}

	want := []string{
		"console Hello, world!",
		"store CSR=0x0",
		"store CVR=0x0",
		"store RVR=0x3",
		"store CSR=0x5",
		"console Old school Blink!",
		"console Old school Blink!",
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestBootState(t *testing.T) {
	var console bytes.Buffer
	fw := systikki.NewFirmware(&console, systikki.NewSimulatedBank())

	if fw.State() != systikki.Booting {
		t.Fatalf("new firmware in state %v", fw.State())
	}
	if fw.Reload != systikki.OneSecondReload {
		t.Errorf("default reload %d", fw.Reload)
	}
	if fw.Poll() {
		t.Error("poll before boot reported a tick")
	}
	if err := fw.Boot(); err != nil {
		t.Fatal(err)
	}
	if fw.State() != systikki.Polling {
		t.Errorf("state after boot %v", fw.State())
	}
	if fw.Retained() != 0xDEADBEEF {
		t.Errorf("retained %#x", fw.Retained())
	}
	if err := fw.Boot(); err == nil {
		t.Error("second boot accepted")
	}
	if got := strings.Count(console.String(), systikki.GreetingMessage); got != 1 {
		t.Errorf("greeting printed %d times", got)
	}
}

func TestBootRejectsReload(t *testing.T) {
	var console bytes.Buffer
	bank := systikki.NewSimulatedBank()
	fw := systikki.NewFirmware(&console, bank)
	fw.Reload = systikki.MAXRELOAD + 1

	err := fw.Boot()
	if !errors.Is(err, systikki.ErrReloadRange) {
		t.Fatalf("Boot() = %v, want ErrReloadRange", err)
	}
	if fw.State() != systikki.Halted {
		t.Errorf("state %v, want halted", fw.State())
	}
	if !errors.Is(fw.Err(), systikki.ErrReloadRange) {
		t.Errorf("Err() = %v", fw.Err())
	}
	if w := bank.Writes(); len(w) != 0 {
		t.Errorf("registers written: %v", w)
	}

	bank.Advance(1 << 10)
	if fw.Poll() {
		t.Error("halted firmware polled")
	}
	if strings.Contains(console.String(), systikki.TickMessage) {
		t.Error("halted firmware printed tick")
	}
}

func TestPollCountsPeriods(t *testing.T) {
	var console bytes.Buffer
	bank := systikki.NewSimulatedBank()
	fw := systikki.NewFirmware(&console, bank)
	fw.Reload = 100
	if err := fw.Boot(); err != nil {
		t.Fatal(err)
	}

	ticks := 0
	for i := 0; i < 1000; i++ {
		bank.Tick()
		if fw.Poll() {
			ticks++
		}
		// extra polls between clocks must not double count
		fw.Poll()
	}
	if ticks != 10 {
		t.Errorf("saw %d periods in 1000 clocks, want 10", ticks)
	}
	if got := strings.Count(console.String(), systikki.TickMessage+"\n"); got != 10 {
		t.Errorf("tick printed %d times", got)
	}
}

type parked struct{}

func TestResetHaltsOnBadReload(t *testing.T) {
	restore := systikki.SetPark(func() { panic(parked{}) })
	defer restore()

	rec := &recorder{sim: systikki.NewSimulatedBank()}
	fw := systikki.NewFirmware(rec, rec)
	fw.Reload = systikki.MAXRELOAD + 1

	func() {
		defer func() {
			if r := recover(); r != (parked{}) {
				t.Fatalf("Reset did not park, recovered %v", r)
			}
		}()
		fw.Reset()
	}()

	if fw.State() != systikki.Halted {
		t.Errorf("state %v, want halted", fw.State())
	}
	if !errors.Is(fw.Err(), systikki.ErrReloadRange) {
		t.Errorf("Err() = %v", fw.Err())
	}
	want := []string{"console Hello, world!"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestHaltParks(t *testing.T) {
	calls := 0
	restore := systikki.SetPark(func() { calls++ })
	defer restore()

	fw := systikki.NewFirmware(&bytes.Buffer{}, systikki.NewSimulatedBank())
	if err := fw.Boot(); err != nil {
		t.Fatal(err)
	}
	fw.Halt()
	if calls != 1 {
		t.Errorf("park called %d times", calls)
	}
	if fw.State() != systikki.Halted {
		t.Errorf("state %v after Halt", fw.State())
	}
	if fw.Poll() {
		t.Error("halted firmware polled")
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[systikki.State]string{
		systikki.Booting:  "booting",
		systikki.Polling:  "polling",
		systikki.Halted:   "halted",
		systikki.State(9): "State(9)",
	} {
		if s.String() != want {
			t.Errorf("%d: %q, want %q", byte(s), s.String(), want)
		}
	}
}

func TestStaticData(t *testing.T) {
	if got := systikki.ReadStaticData(); got != 0xDEADBEEF {
		t.Errorf("ReadStaticData() = %#x", got)
	}
}
