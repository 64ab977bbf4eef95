package cmd

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cmmoran/propkeygen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewKeysCommand())
}

func NewKeysCommand() *cobra.Command {
	var flags targetFlags

	// keysCmd represents the propkeygen keys command
	var keysCmd = &cobra.Command{
		Use:   "keys [flags] [file.properties...]",
		Short: "list keys and their identifiers",
		Long:  "Print every key, where it was read and the identifier it becomes, without writing anything",
		RunE: func(c *cobra.Command, args []string) error {
			targets, err := flags.targets(args)
			if err != nil {
				return err
			}
			outcomes, err := generate.Render(c.Context(), targets)
			if err != nil {
				return err
			}
			for _, o := range outcomes {
				pterm.DefaultSection.Println(o.Class)
				data := pterm.TableData{{"Key", "Origin", "Identifier"}}
				for _, e := range o.Result.Entries {
					data = append(data, []string{
						e.Key,
						e.File + ":" + strconv.Itoa(e.Line),
						e.Scope + "." + e.Identifier,
					})
				}
				if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(c.OutOrStdout()).Render(); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(c.OutOrStdout(), "%d %s\n", len(o.Result.Entries), plural("key", len(o.Result.Entries)))
			}
			return nil
		},
	}
	flags.bind(keysCmd)
	return keysCmd
}
