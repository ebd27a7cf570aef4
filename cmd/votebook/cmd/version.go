package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"boscoin.io/votebook/cmd/votebook/common"
	"boscoin.io/votebook/lib/version"
)

var flagVersionFormat string = "yaml"

func init() {
	versionCmd.Flags().StringVar(&flagVersionFormat, "format", flagVersionFormat, "format={oneline, json, prettyjson, yaml}")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(c *cobra.Command, args []string) {
		if flagVersionFormat == "oneline" {
			fmt.Printf("%s\n", version.ToDetailVersion())
			return
		}

		encode, ok := common.DefaultEncodes[flagVersionFormat]
		if !ok {
			common.PrintFlagsError(c, "--format", fmt.Errorf("%q not recognized", flagVersionFormat))
		}
		if err := encode(version.GetInfo(), os.Stdout); err != nil {
			common.PrintError(c, err)
		}
	},
}
