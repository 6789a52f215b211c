package hashchain

import (
	"runtime"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Verifier checks proofs against one verifying key. It is safe for
// concurrent use.
type Verifier struct {
	vk  *VerifyingKey
	log zerolog.Logger
}

func NewVerifier(vk *VerifyingKey) *Verifier {
	return &Verifier{vk: vk, log: logger.Logger().With().Str("component", "verifier").Logger()}
}

// Verify reports whether proof shows a chain of stepNum steps plus the final
// step starting from initValue. The reason of a rejection is only logged.
func (me *Verifier) Verify(initValue uint64, stepNum int, proof *CompressedProof) bool {
	if stepNum < 0 {
		me.log.Debug().Int("step_num", stepNum).Msg("negative step count")
		return false
	}
	if _, _, err := proof.Verify(me.vk, stepNum+1, initialState(initValue), companionState()); err != nil {
		me.log.Debug().Err(err).Uint64("init", initValue).Int("step_num", stepNum).Msg("proof rejected")
		return false
	}
	return true
}

// Claim is one statement for VerifyBatch.
type Claim struct {
	InitValue uint64
	StepNum   int
	Proof     *CompressedProof
}

// VerifyBatch verifies claims in parallel and returns one result per claim.
func (me *Verifier) VerifyBatch(claims []Claim) []bool {
	results := make([]bool, len(claims))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range claims {
		g.Go(func() error {
			results[i] = me.Verify(claims[i].InitValue, claims[i].StepNum, claims[i].Proof)
			return nil
		})
	}
	g.Wait()
	return results
}
