package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eon-protocol/hashchain"
)

var valueCmd = &cobra.Command{
	Use:   "value <init_value> <step_num>",
	Short: "Print the chain value and the final state without proving",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		initValue, stepNum, err := parseStatement(args)
		if err != nil {
			return err
		}
		v := hashchain.ChainValue(initValue, stepNum)
		zn := hashchain.FinalState(initValue, stepNum)
		fmt.Println("v", "[", stepNum, "]", "=", v.Text(16))
		fmt.Println("z", "[", "n", "]", "=", "(", zn[0].Text(16), ",", zn[1].Text(16), ")")
		return nil
	},
}
