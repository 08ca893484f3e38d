package service

import (
	stderrors "errors"

	"github.com/rs/zerolog"

	"ecomm/internal/errors"
)

// Stage is a step of a multi-entity mutation.
type Stage string

const (
	StageValidating        Stage = "validating"
	StageResolvingProducts Stage = "resolving_products"
	StageCommitting        Stage = "committing"
	StageDone              Stage = "done"
	StageFailed            Stage = "failed"
)

// workflow tracks the stage of one mutation so failures can be logged where they happened.
type workflow struct {
	op    string
	stage Stage
	log   zerolog.Logger
}

func newWorkflow(log zerolog.Logger, op string) *workflow {
	return &workflow{op: op, stage: StageValidating, log: log}
}

func (w *workflow) advance(next Stage) {
	w.stage = next
}

// fail logs err with the stage it happened in and moves to StageFailed.
// Store failures are logged at error level, rejected input at warn.
func (w *workflow) fail(err error) error {
	ev := w.log.Warn()
	if stderrors.Is(err, errors.ErrStoreFailure) || !errors.IsDomain(err) {
		ev = w.log.Error()
	}
	ev.Err(err).Str("op", w.op).Str("stage", string(w.stage)).Msg("workflow failed")
	w.stage = StageFailed
	return err
}

func (w *workflow) done() {
	w.stage = StageDone
	w.log.Debug().Str("op", w.op).Msg("workflow done")
}
