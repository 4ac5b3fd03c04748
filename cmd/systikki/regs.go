//go:build linux

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hjkoskel/systikki"
)

var (
	regsOpts = struct {
		mem   string
		board string
		csr   bool
	}{}

	regsCmd = &cobra.Command{
		Use:   "regs",
		Short: "Print SysTick registers from a memory mapping",
		Long:  "Map the SysTick window from /dev/mem (or a register memory file) and print its registers. CSR is read only with --csr since reading it clears COUNTFLAG.",
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := loadBoards()
			if err != nil {
				return err
			}
			board, err := boards.Find(regsOpts.board)
			if err != nil {
				return err
			}

			bank, err := systikki.OpenMapped(regsOpts.mem, board.Base)
			if err != nil {
				return err
			}
			defer bank.Close()

			out := cmd.OutOrStdout()
			timer := systikki.NewSysTick(bank)
			if regsOpts.csr {
				fmt.Fprintf(out, "CSR   %#08x\n", bank.Load32(systikki.CSR))
			}
			fmt.Fprintf(out, "RVR   %#08x (period %v at %d Hz)\n", timer.Reload(), systikki.PeriodOf(board.ClockHz, timer.Reload()), board.ClockHz)
			fmt.Fprintf(out, "CVR   %#08x\n", timer.Current())
			cal := timer.Calibration()
			fmt.Fprintf(out, "CALIB tenms=%d skew=%v noref=%v\n", cal.TenMs, cal.Skew, cal.NoRef)
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(regsCmd)
	regsCmd.Flags().StringVar(&regsOpts.mem, "mem", "/dev/mem", "memory device or register memory file")
	regsCmd.Flags().StringVar(&regsOpts.board, "board", "default", "board profile, gives SysTick base and clock")
	regsCmd.Flags().BoolVar(&regsOpts.csr, "csr", false, "also read CSR, clears pending COUNTFLAG")
}
