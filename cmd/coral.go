package cmd

import (
	"io"
	"log"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/paleodata/lipdk/usecase/coral"
	"github.com/spf13/cobra"
)

// CoralMain is wrapped by NewCoralCommand and only exported for testing purposes.
var CoralMain *coral.Main

// NewCoralCommand returns a new cobra command wrapping CoralMain.
func NewCoralCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var err error
	CoralMain = coral.NewMain()
	coralCommand := &cobra.Command{
		Use:   "coral",
		Short: "fetch the CoralHydro2k archive and write the standard reports",
		Long: `Fetch the published CoralHydro2k coral archive (or a local copy),
flatten it to a time series table, and write the walkthrough's site
maps, overview dashboard, and stacked isotope plots into the output
directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			err = CoralMain.Run()
			if err != nil {
				return err
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	flags := coralCommand.Flags()
	err = commandeer.Flags(flags, CoralMain)
	if err != nil {
		panic(err)
	}
	return coralCommand
}

func init() {
	subcommandFns["coral"] = NewCoralCommand
}
