package hashchain

import (
	"fmt"
	"io"
	"time"

	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/eon-protocol/hashchain/circuits/chain"
	"github.com/eon-protocol/hashchain/gpu"
	"github.com/eon-protocol/hashchain/ivc"
)

// Prover builds the proof for one chain. NewProver does no work, everything
// happens in Prove.
//
// The compression circuit is unrolled, so stepNum + 1 may not exceed the
// capacity of the parameters: stepNum <= DEFAULT_CAPACITY - 1 with
// DefaultParams, larger chains need WithParams(NewParams(n)). Every proof
// costs as much as a full capacity one.
type Prover struct {
	initValue uint64
	stepNum   int

	params     *Params
	selfCheck  bool
	progress   io.Writer
	log        zerolog.Logger
	proverOpts []backend.ProverOption
}

func NewProver(initValue uint64, stepNum int, opts ...Option) *Prover {
	p := &Prover{
		initValue: initValue,
		stepNum:   stepNum,
		selfCheck: true,
		log:       logger.Logger().With().Str("component", "hashchain").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Witnesses returns the step witnesses in folding order, nil for a negative
// step count.
func (me *Prover) Witnesses() []*chain.Circuit {
	if me.stepNum < 0 {
		return nil
	}
	return witnesses(me.initValue, me.stepNum)
}

// Prove folds stepNum + 1 steps and compresses them. Keys are generated for
// every call and the verifying key is returned with the proof.
func (me *Prover) Prove() (*CompressedProof, *VerifyingKey, error) {
	if me.stepNum < 0 {
		return nil, nil, &ProvingError{Op: "validate", Err: fmt.Errorf("%w: %d", ErrInvalidStepNum, me.stepNum)}
	}
	pp := me.params
	if pp == nil {
		var err error
		if pp, err = DefaultParams(); err != nil {
			return nil, nil, &ProvingError{Op: "params", Err: err}
		}
	}
	numSteps := me.stepNum + 1
	if numSteps > pp.Capacity() {
		return nil, nil, &ProvingError{Op: "validate", Err: fmt.Errorf("%w: %d steps, capacity %d", ivc.ErrCapacityExceeded, numSteps, pp.Capacity())}
	}
	log := me.log.With().Uint64("init", me.initValue).Int("step_num", me.stepNum).Logger()

	start := time.Now()
	acc, err := me.fold(pp)
	if err != nil {
		return nil, nil, &ProvingError{Op: "fold", Err: err}
	}
	log.Debug().Dur("took", time.Since(start)).Msg("chain folded")

	z0, z0c := initialState(me.initValue), companionState()
	if me.selfCheck {
		if _, _, err := acc.Verify(pp, numSteps, z0, z0c); err != nil {
			return nil, nil, &ProvingError{Op: "self-check", Err: fmt.Errorf("%w: %v", ErrInconsistentChain, err)}
		}
	}

	start = time.Now()
	pk, vk, err := ivc.CompressedSetup(pp)
	if err != nil {
		return nil, nil, &ProvingError{Op: "setup", Err: err}
	}
	opts := append(gpu.ProverOptions(), me.proverOpts...)
	proof, err := ivc.Compress(pp, pk, acc, opts...)
	if err != nil {
		return nil, nil, &ProvingError{Op: "compress", Err: err}
	}
	log.Info().Dur("took", time.Since(start)).Int("constraints", pp.NbConstraints()).Msg("proof compressed")
	return proof, vk, nil
}

func (me *Prover) fold(pp *Params) (*Accumulator, error) {
	ws := me.Witnesses()
	bar := progressbar.DefaultSilent(int64(len(ws)), "folding")
	if me.progress != nil {
		bar = progressbar.NewOptions(len(ws),
			progressbar.OptionSetWriter(me.progress),
			progressbar.OptionSetDescription("folding"),
			progressbar.OptionShowCount(),
		)
	}
	defer bar.Finish()

	acc, err := ivc.NewAccumulator(pp, ws[0], &ivc.TrivialCircuit{}, initialState(me.initValue), companionState())
	if err != nil {
		return nil, err
	}
	bar.Add(1)
	for _, w := range ws[1:] {
		if err := acc.Fold(pp, w, &ivc.TrivialCircuit{}); err != nil {
			return nil, err
		}
		bar.Add(1)
	}
	return acc, nil
}
