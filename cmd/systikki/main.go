// systikki runs the SysTick demo firmware on a host against a simulated
// SysTick, and inspects a mapped SysTick window.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/hjkoskel/systikki"
)

var (
	boardsFile string

	rootCmd = &cobra.Command{
		Use:          "systikki",
		Short:        "SysTick demo tools",
		Long:         "Run the SysTick polling demo on a simulated timer, or inspect SysTick registers through a memory mapping.",
		SilenceUsage: true,
	}
)

func init() {
	log.SetFlags(0)
	log.SetPrefix("systikki: ")
	rootCmd.PersistentFlags().StringVarP(&boardsFile, "boards", "b", "", "extra board profiles YAML, merged over built in ones")
	rootCmd.AddCommand(runCmd, boardsCmd)
}

func loadBoards() (systikki.Boards, error) {
	boards := systikki.KnownBoards()
	if len(boardsFile) == 0 {
		return boards, nil
	}
	extra, err := systikki.LoadBoards(boardsFile)
	if err != nil {
		return nil, err
	}
	return boards.Merge(extra), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
