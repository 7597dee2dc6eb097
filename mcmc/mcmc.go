/*
Package mcmc implements Markov chain Monte Carlo samplers for a scalar
parameter. The target density is supplied by the caller as an
unnormalized non-negative function; the samplers produce a chain whose
empirical distribution approximates the target.

Every sampler owns an isolated random number generator, so two runs
with the same seed and the same inputs produce identical chains.
*/
package mcmc

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/metrop/checkpoint"
)

// log is the global logging variable.
var log = logging.MustGetLogger("mcmc")

// DensityFunc is an unnormalized target density. It must return a
// non-negative value for every point of the domain; a negative or NaN
// value is a contract violation and aborts sampling.
type DensityFunc func(theta float64) float64

// baseSampler stores state and settings shared by the samplers.
type baseSampler struct {
	settings *Settings
	rng      *rand.Rand
	out      io.Writer
	// AccPeriod is the number of iterations between acceptance
	// rate reports.
	AccPeriod int
	repPeriod int
	sig       chan os.Signal
	cp        *checkpoint.ChainIO
	accepted  int
	// Quiet disables acceptance rate and summary logging.
	Quiet bool
}

func newBaseSampler(settings *Settings) baseSampler {
	seed := settings.Seed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	return baseSampler{
		settings:  settings,
		rng:       rand.New(rand.NewSource(seed)),
		AccPeriod: 200,
		repPeriod: 1000,
	}
}

// WatchSignals installs a signal handler; on a signal the sampler
// aborts the chain and returns an error.
func (b *baseSampler) WatchSignals(sigs ...os.Signal) {
	b.sig = make(chan os.Signal, 1)
	signal.Notify(b.sig, sigs...)
}

// SetTrajectoryOutput sets a writer for the chain trajectory.
func (b *baseSampler) SetTrajectoryOutput(w io.Writer) {
	b.out = w
}

// SetReportPeriod sets the trajectory reporting period.
func (b *baseSampler) SetReportPeriod(period int) {
	b.repPeriod = period
}

// SetCheckpoint enables periodic saving of the chain state. A resumed
// chain is not byte-identical to an uninterrupted one even with the
// same seed, since the generator state is not persisted.
func (b *baseSampler) SetCheckpoint(cp *checkpoint.ChainIO) {
	b.cp = cp
}

// Accepted returns the number of accepted proposals so far.
func (b *baseSampler) Accepted() int {
	return b.accepted
}

func (b *baseSampler) printHeader() {
	if b.out != nil {
		fmt.Fprintf(b.out, "iteration\ttheta\n")
	}
}

func (b *baseSampler) printLine(i int, theta float64) {
	if b.out != nil && i%b.repPeriod == 0 {
		fmt.Fprintf(b.out, "%d\t%s\n", i, strconv.FormatFloat(theta, 'f', 6, 64))
	}
}

func (b *baseSampler) reportAcceptance(i int, accepted *int) {
	if !b.Quiet && b.AccPeriod > 0 && i > 0 && i%b.AccPeriod == 0 {
		log.Infof("Acceptance rate %.2f%%", 100*float64(*accepted)/float64(b.AccPeriod))
		*accepted = 0
	}
}

// interrupted returns an error if a watched signal arrived.
func (b *baseSampler) interrupted(generated int) error {
	select {
	case s := <-b.sig:
		return fmt.Errorf("received signal %v after %d samples", s, generated)
	default:
	}
	return nil
}

// resume loads an unfinished chain from the checkpoint, if present.
func (b *baseSampler) resume() (chain []float64, theta float64, ok bool, err error) {
	if b.cp == nil {
		return nil, 0, false, nil
	}
	data, err := b.cp.Load()
	if err != nil {
		return nil, 0, false, err
	}
	if data == nil || data.Final || len(data.Samples) == 0 ||
		len(data.Samples) > b.settings.ChainLength {
		return nil, 0, false, nil
	}
	log.Noticef("Resuming chain from checkpoint (iter=%v)", data.Iter)
	chain = make([]float64, 0, b.settings.ChainLength)
	chain = append(chain, data.Samples...)
	b.accepted = data.Accepted
	return chain, data.Theta, true, nil
}

func (b *baseSampler) saveCheckpoint(theta float64, chain []float64, final bool) {
	if b.cp == nil {
		return
	}
	if !final && !b.cp.Old() {
		return
	}
	b.cp.Save(&checkpoint.ChainData{
		Theta:    theta,
		Iter:     len(chain),
		Accepted: b.accepted,
		Samples:  chain,
		Final:    final,
	})
}
