package cmd

import (
	"io"
	"log"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/paleodata/lipdk/fetch"
	"github.com/spf13/cobra"
)

// SummaryMain is wrapped by NewSummaryCommand and only exported for testing purposes.
var SummaryMain *fetch.SummaryMain

// NewSummaryCommand returns a new cobra command wrapping SummaryMain.
func NewSummaryCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var err error
	SummaryMain = fetch.NewSummaryMain(stdout)
	summaryCommand := &cobra.Command{
		Use:   "summary",
		Short: "print a text summary of the archive's (filtered) records",
		Long: `Load an archive, flatten it to a time series table, apply the
--where filter clauses, and print per-column value counts and numeric
ranges for the matching records.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			err = SummaryMain.Run()
			if err != nil {
				return err
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	flags := summaryCommand.Flags()
	err = commandeer.Flags(flags, SummaryMain)
	if err != nil {
		panic(err)
	}
	return summaryCommand
}

func init() {
	subcommandFns["summary"] = NewSummaryCommand
}
