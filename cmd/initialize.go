package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cmmoran/propkeygen/pkg/action/initialize"
	"github.com/cmmoran/propkeygen/pkg/manifest"
)

func init() {
	var initializeCmd = NewInitCommand()
	rootCmd.AddCommand(initializeCmd)
}

func NewInitCommand() *cobra.Command {
	var (
		path  string
		force bool
	)

	// initCmd represents the propkeygen init command
	var initCmd = &cobra.Command{
		Use:   "init",
		Short: "write a starter manifest",
		Long:  "Write a starter propkeygen.yaml describing one generation target",
		RunE: func(c *cobra.Command, args []string) error {
			if err := initialize.Generate(path, force); err != nil {
				return err
			}
			pterm.Success.Printf("wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&path, "file", "f", manifest.DefaultName, "manifest file to write")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing manifest")

	return initCmd
}
