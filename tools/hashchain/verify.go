package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eon-protocol/hashchain"
)

var verifyFlags struct {
	vk, proof string
}

var verifyCmd = &cobra.Command{
	Use:   "verify <init_value> <step_num>",
	Short: "Verify a hash chain proof",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		initValue, stepNum, err := parseStatement(args)
		if err != nil {
			return err
		}
		var vk hashchain.VerifyingKey
		if err := readHex(verifyFlags.vk, &vk); err != nil {
			return fmt.Errorf("verifying key: %w", err)
		}
		var proof hashchain.CompressedProof
		if err := readHex(verifyFlags.proof, &proof); err != nil {
			return fmt.Errorf("proof: %w", err)
		}

		if !hashchain.NewVerifier(&vk).Verify(initValue, stepNum, &proof) {
			fmt.Printf("%s  proof rejected for init=%d step_num=%d\n", color.RedString("✗"), initValue, stepNum)
			return fmt.Errorf("verification failed")
		}
		fmt.Printf("%s  proof valid for init=%d step_num=%d\n", color.GreenString("✓"), initValue, stepNum)
		fmt.Printf("%s  final value %s\n", color.BlueString("ℹ"), proof.ZN[1].Text(16))
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyFlags.vk, "vk", "", "hex encoded verifying key")
	verifyCmd.Flags().StringVar(&verifyFlags.proof, "proof", "", "hex encoded proof")
	verifyCmd.MarkFlagRequired("vk")
	verifyCmd.MarkFlagRequired("proof")
}
