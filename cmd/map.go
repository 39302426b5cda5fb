package cmd

import (
	"io"
	"log"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/paleodata/lipdk/render"
	"github.com/spf13/cobra"
)

// MapMain is wrapped by NewMapCommand and only exported for testing purposes.
var MapMain *render.MapMain

// NewMapCommand returns a new cobra command wrapping MapMain.
func NewMapCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var err error
	MapMain = render.NewMapMain()
	mapCommand := &cobra.Command{
		Use:   "map",
		Short: "render a site map of the archive's (filtered) records",
		Long: `Load an archive, flatten it to a time series table, apply the
--where filter clauses, and render the matching sites on a world (or
regional) map as an HTML file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			err = MapMain.Run()
			if err != nil {
				return err
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	flags := mapCommand.Flags()
	err = commandeer.Flags(flags, MapMain)
	if err != nil {
		panic(err)
	}
	return mapCommand
}

func init() {
	subcommandFns["map"] = NewMapCommand
}
