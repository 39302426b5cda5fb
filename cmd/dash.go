package cmd

import (
	"io"
	"log"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/paleodata/lipdk/render"
	"github.com/spf13/cobra"
)

// DashMain is wrapped by NewDashCommand and only exported for testing purposes.
var DashMain *render.DashMain

// NewDashCommand returns a new cobra command wrapping DashMain.
func NewDashCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var err error
	DashMain = render.NewDashMain()
	dashCommand := &cobra.Command{
		Use:   "dash",
		Short: "render an overview dashboard for the archive's (filtered) records",
		Long: `Load an archive, flatten it to a time series table, apply the
--where filter clauses, and render a single-page dashboard (site map,
record counts, resolution histogram, temporal coverage) as an HTML
file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			err = DashMain.Run()
			if err != nil {
				return err
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	flags := dashCommand.Flags()
	err = commandeer.Flags(flags, DashMain)
	if err != nil {
		panic(err)
	}
	return dashCommand
}

func init() {
	subcommandFns["dash"] = NewDashCommand
}
