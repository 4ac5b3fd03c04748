package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hjkoskel/systikki"
)

var (
	boardsPeriod time.Duration

	boardsCmd = &cobra.Command{
		Use:   "boards",
		Short: "List board profiles and the reload they need",
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := loadBoards()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "BOARD\tCLOCK\tBASE\tRELOAD(%v)\n", boardsPeriod)
			for _, b := range boards.Sorted() {
				reload := ""
				r, err := b.ReloadFor(boardsPeriod)
				switch {
				case err == nil:
					reload = fmt.Sprintf("%d", r)
				case errors.Is(err, systikki.ErrReloadRange):
					reload = "over 24 bits"
				default:
					reload = err.Error()
				}
				fmt.Fprintf(w, "%s\t%d\t%#08x\t%s\n", b.Name, b.ClockHz, b.Base, reload)
			}
			return w.Flush()
		},
	}
)

func init() {
	boardsCmd.Flags().DurationVar(&boardsPeriod, "period", time.Second, "period to compute reload for")
}
