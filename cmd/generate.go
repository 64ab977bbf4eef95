package cmd

import (
	"github.com/jinzhu/inflection"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cmmoran/propkeygen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

func NewGenerateCommand() *cobra.Command {
	var flags targetFlags

	// generateCmd represents the propkeygen generate command
	var generateCmd = &cobra.Command{
		Use:     "generate [flags] [file.properties...]",
		Aliases: []string{"gen"},
		Short:   "generate constants",
		Long:    "Generate the constants class for the target given by flags, or for every target of the manifest",
		RunE: func(c *cobra.Command, args []string) error {
			targets, err := flags.targets(args)
			if err != nil {
				return err
			}
			outcomes, err := generate.Generate(c.Context(), targets)
			if err != nil {
				return err
			}
			written := 0
			for _, o := range outcomes {
				n := len(o.Result.Entries)
				if o.Written {
					written++
					pterm.Success.Printf("%s: %d %s -> %s\n", o.Class, n, plural("constant", n), o.Result.Path)
				} else {
					pterm.Info.Printf("%s: unchanged %s\n", o.Class, o.Result.Path)
				}
			}
			pterm.Info.Printf("%d %s written, %d up to date\n", written, plural("file", written), len(outcomes)-written)
			return nil
		},
	}
	flags.bind(generateCmd)
	return generateCmd
}

func plural(noun string, n int) string {
	if n == 1 {
		return noun
	}
	return inflection.Plural(noun)
}
