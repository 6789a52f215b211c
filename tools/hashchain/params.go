package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Print the shape digest of the public parameters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pp, err := params()
		if err != nil {
			return err
		}
		digest := pp.Digest()
		fmt.Println("capacity", "=", pp.Capacity())
		fmt.Println("constraints", "=", pp.NbConstraints())
		fmt.Println("digest", "=", digest.Text(16))
		return nil
	},
}
