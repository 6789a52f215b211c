package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/eon-protocol/hashchain"
	"github.com/eon-protocol/hashchain/internal/config"
)

var proveFlags struct {
	vk, proof string
}

var proveCmd = &cobra.Command{
	Use:   "prove <init_value> <step_num>",
	Short: "Prove a hash chain and write the verifying key and the proof",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		initValue, stepNum, err := parseStatement(args)
		if err != nil {
			return err
		}
		pp, err := params()
		if err != nil {
			return err
		}
		proof, vk, err := hashchain.NewProver(initValue, stepNum, proverOptions(cfg, pp)...).Prove()
		if err != nil {
			return err
		}
		if err := writeHex(proveFlags.vk, vk); err != nil {
			return err
		}
		return writeHex(proveFlags.proof, proof)
	},
}

func proverOptions(cfg *config.Config, pp *hashchain.Params) []hashchain.Option {
	opts := []hashchain.Option{
		hashchain.WithParams(pp),
		hashchain.WithSelfCheck(cfg.Prover.SelfCheck),
		hashchain.WithLogger(cfg.Logger()),
	}
	if cfg.Prover.Progress {
		opts = append(opts, hashchain.WithProgress(os.Stderr))
	}
	return opts
}

func init() {
	proveCmd.Flags().StringVar(&proveFlags.vk, "vk", "", "verifying key output, stdout if empty")
	proveCmd.Flags().StringVar(&proveFlags.proof, "proof", "", "proof output, stdout if empty")
}
