package cmd

import (
	"io"
	"log"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/paleodata/lipdk/render"
	"github.com/spf13/cobra"
)

// StackMain is wrapped by NewPlotCommand and only exported for testing purposes.
var StackMain *render.StackMain

// NewPlotCommand returns a new cobra command wrapping StackMain.
func NewPlotCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var err error
	StackMain = render.NewStackMain()
	plotCommand := &cobra.Command{
		Use:   "plot",
		Short: "render stacked line plots of the archive's (filtered) records",
		Long: `Load an archive, flatten it to a time series table, apply the
--where filter clauses, and render each matching record as a line chart
stacked on a single HTML page.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			err = StackMain.Run()
			if err != nil {
				return err
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	flags := plotCommand.Flags()
	err = commandeer.Flags(flags, StackMain)
	if err != nil {
		panic(err)
	}
	return plotCommand
}

func init() {
	subcommandFns["plot"] = NewPlotCommand
}
