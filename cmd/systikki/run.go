package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	tty "github.com/mattn/go-tty"
	"github.com/spf13/cobra"

	"github.com/hjkoskel/systikki"
)

// check for interrupt this often, in simulated clocks
const cancelCheckTicks = 1 << 16

var (
	runOpts = struct {
		board  string
		period time.Duration
		reload uint32
		ticks  uint64
		tty    string
	}{}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the demo firmware on a simulated SysTick",
		Long:  "Boot the demo firmware against a simulated SysTick and advance the simulated clock, one tick per poll.",
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := loadBoards()
			if err != nil {
				return err
			}
			board, err := boards.Find(runOpts.board)
			if err != nil {
				return err
			}

			reload := runOpts.reload
			if !cmd.Flags().Changed("reload") {
				if reload, err = board.ReloadFor(runOpts.period); err != nil {
					return err
				}
			}

			console, closeConsole, err := openConsole(runOpts.tty)
			if err != nil {
				return err
			}
			defer closeConsole()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			events, err := simulate(ctx, console, reload, runOpts.ticks)
			if err != nil {
				return err
			}
			log.Printf("board %s, reload %d, %d tick events", board.Name, reload, events)
			return nil
		},
	}
)

func init() {
	runCmd.Flags().StringVar(&runOpts.board, "board", "default", "board profile, gives processor clock")
	runCmd.Flags().DurationVar(&runOpts.period, "period", time.Second, "wanted tick period")
	runCmd.Flags().Uint32Var(&runOpts.reload, "reload", 0, "reload value, overrides --board and --period")
	runCmd.Flags().Uint64Var(&runOpts.ticks, "ticks", 0, "simulated clocks to run, 0 runs until interrupted")
	runCmd.Flags().StringVar(&runOpts.tty, "tty", "", "serial device for debug console, default stdout")
}

// simulate boots firmware and advances the clock one tick per poll.
// Returns number of polls that saw the period elapse.
func simulate(ctx context.Context, console io.Writer, reload uint32, ticks uint64) (uint64, error) {
	bank := systikki.NewSimulatedBank()
	fw := systikki.NewFirmware(console, bank)
	fw.Reload = reload
	if err := fw.Boot(); err != nil {
		return 0, err //Target would halt here
	}

	events := uint64(0)
	for i := uint64(0); ticks == 0 || i < ticks; i++ {
		if i%cancelCheckTicks == 0 && ctx.Err() != nil {
			return events, nil
		}
		bank.Tick()
		if fw.Poll() {
			events++
		}
	}
	return events, nil
}

func openConsole(path string) (io.Writer, func() error, error) {
	if len(path) == 0 {
		return os.Stdout, func() error { return nil }, nil
	}
	t, err := tty.OpenDevice(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open console %s: %w", path, err)
	}
	return t.Output(), t.Close, nil
}
