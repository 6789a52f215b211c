package hashchain

import (
	"io"

	"github.com/consensys/gnark/backend"
	"github.com/rs/zerolog"
)

type Option func(*Prover)

// WithParams uses pp instead of DefaultParams.
func WithParams(pp *Params) Option {
	return func(p *Prover) {
		p.params = pp
	}
}

// WithSelfCheck toggles the check of the folded chain before compression.
// It is on by default.
func WithSelfCheck(enabled bool) Option {
	return func(p *Prover) {
		p.selfCheck = enabled
	}
}

// WithProgress renders a folding progress bar to w.
func WithProgress(w io.Writer) Option {
	return func(p *Prover) {
		p.progress = w
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(p *Prover) {
		p.log = log
	}
}

// WithProverOptions is passed to the Groth16 prover after the gpu options.
func WithProverOptions(opts ...backend.ProverOption) Option {
	return func(p *Prover) {
		p.proverOpts = append(p.proverOpts, opts...)
	}
}
