package main

import (
	"os"

	"github.com/consensys/gnark/logger"
	"github.com/spf13/cobra"

	"github.com/eon-protocol/hashchain"
	"github.com/eon-protocol/hashchain/internal/config"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "hashchain",
	Short: "Prove and verify Poseidon2 hash chains",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		logger.Set(cfg.Logger())
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.AddCommand(proveCmd, verifyCmd, valueCmd, paramsCmd)
}

func params() (*hashchain.Params, error) {
	if cfg.Prover.Capacity == hashchain.DEFAULT_CAPACITY {
		return hashchain.DefaultParams()
	}
	return hashchain.NewParams(cfg.Prover.Capacity)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
