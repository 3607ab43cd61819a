package cmd

import (
	"fmt"

	"github.com/jsphweid/pianosight/key"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(keysCmd)
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Lists the supported keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, label := range key.Supported {
			k, err := key.Resolve(label)
			if err != nil {
				return err
			}
			fmt.Printf("%-8s %s\n", label, dimStyle.Render(string(k.Mode)+", K:"+k.ABC()))
		}
		return nil
	},
}
