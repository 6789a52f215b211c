//go:build icicle

package gpu

import (
	"fmt"
	"sync"

	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/logger"
	icicle_runtime "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/runtime"
)

const HasIcicle = true

var loadBackend = sync.OnceValue(func() error {
	if st := icicle_runtime.LoadBackendFromEnvOrDefault(); st != icicle_runtime.Success {
		return fmt.Errorf("icicle backend: %s", st.AsString())
	}
	dev := icicle_runtime.CreateDevice("CUDA", 0)
	if st := icicle_runtime.SetDevice(&dev); st != icicle_runtime.Success {
		return fmt.Errorf("icicle device: %s", st.AsString())
	}
	return nil
})

// ProverOptions routes the Groth16 prover to the GPU. If no backend can be
// loaded the CPU prover is used and a warning is logged.
func ProverOptions() []backend.ProverOption {
	if err := loadBackend(); err != nil {
		log := logger.Logger()
		log.Warn().Err(err).Msg("icicle unavailable, proving on CPU")
		return nil
	}
	return []backend.ProverOption{backend.WithIcicleAcceleration()}
}
