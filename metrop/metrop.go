/*

Metrop draws samples from a scalar target density using the Metropolis
algorithm.

The basic usage of metrop looks like this:

	metrop beta --dpar "15 7" --min 0 --max 1

, this will generate a chain of samples from the unnormalized
Beta(15, 7) density using a normal random-walk proposal.

You can change the proposal, the chain length and the burn-in:

	metrop gamma --dpar "2 5 4" --min 4 --proposal uniform --width 2 --chain 10000 --burnin 1000

To see all the options run:

	metrop --help

*/
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"time"

	"github.com/op/go-logging"
	bolt "go.etcd.io/bbolt"
	"gopkg.in/alecthomas/kingpin.v2"

	"bitbucket.org/Davydov/metrop/checkpoint"
	"bitbucket.org/Davydov/metrop/dist"
	"bitbucket.org/Davydov/metrop/mcmc"
	"bitbucket.org/Davydov/metrop/optimize"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("metrop")
var formatter = logging.MustStringFormatter(`%{message}`)

// command-line options
var (
	// application
	app = kingpin.New("metrop", "scalar Metropolis sampler").Version(version)

	// target density
	densityName = app.Arg("density", "target density (normal, gamma, beta or uniform)").Required().String()
	densityPar  = app.Flag("dpar", "density parameters, space-separated (e.g. \"15 7\")").Default("").String()

	// chain parameters
	chainLength = app.Flag("chain", "length of the chain to generate").Default("5000").Int()
	initial     = app.Flag("initial", "initial value of the chain").Default("0.5").Float64()
	burnIn      = app.Flag("burnin", "number of leading samples to discard").Default("0").Int()
	minTheta    = app.Flag("min", "lower domain bound").Default("-Inf").Float64()
	maxTheta    = app.Flag("max", "upper domain bound").Default("+Inf").Float64()

	// proposal parameters
	proposalName = app.Flag("proposal", "proposal distribution (normal or uniform)").Default("normal").String()
	proposalSD   = app.Flag("sd", "standard deviation of the normal proposal").Default("0.2").Float64()
	width        = app.Flag("width", "width of the uniform proposal").Default("1").Float64()

	// sampling method
	method = app.Flag("method", "sampling method to use "+
		"(metropolis: random-walk Metropolis, "+
		"hmc: Hamiltonian Monte Carlo"+
		")").Default("metropolis").Enum("metropolis", "hmc")
	eps    = app.Flag("eps", "leapfrog step size (hmc)").Default("0.1").Float64()
	lsteps = app.Flag("lsteps", "number of leapfrog steps per trajectory (hmc)").Default("10").Int()

	// reporting
	report = app.Flag("report", "report trajectory every N iterations").Default("1000").Int()
	accept = app.Flag("accept", "report acceptance rate every N iterations").Default("200").Int()

	// starting point
	startMode = app.Flag("startmode", "start the chain from the density mode (L-BFGS-B)").Bool()

	// checkpoints
	checkpointF   = app.Flag("checkpoint", "checkpoint database filename").String()
	checkpointSec = app.Flag("cpsec", "checkpoint interval in seconds").Default("30").Float64()

	// technical
	seed       = app.Flag("seed", "random generator seed, default time based").Default("-1").Int64()
	cpuProfile = app.Flag("cpuprofile", "write cpu profile to file").String()

	// input/output
	outLogF  = app.Flag("log", "write log to a file").String()
	outF     = app.Flag("out", "write sampling trajectory to a file").String()
	plotF    = app.Flag("plot", "write sample histogram to a PNG file").String()
	traceF   = app.Flag("traceplot", "write chain trace to a PNG file").String()
	jsonF    = app.Flag("json", "write json summary to a file").String()
	quiet    = app.Flag("quiet", "disable most of the output").Bool()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")
)

// sampler is implemented by all the sampling methods.
type sampler interface {
	Run() ([]float64, error)
	Accepted() int
	WatchSignals(...os.Signal)
	SetTrajectoryOutput(io.Writer)
	SetReportPeriod(int)
	SetCheckpoint(*checkpoint.ChainIO)
}

// targetDist bundles a density with the distribution and quantile
// functions of the target, known in closed form for the built-in
// densities.
type targetDist struct {
	density  mcmc.DensityFunc
	cdf      func(x float64) float64
	quantile func(prob float64) float64
}

// getDensityFromString returns a target distribution from a name and
// parameters.
func getDensityFromString(name string, pars []float64) (*targetDist, error) {
	switch name {
	case "normal":
		mu, sd := 0.0, 1.0
		if len(pars) > 0 {
			mu = pars[0]
		}
		if len(pars) > 1 {
			sd = pars[1]
		}
		log.Infof("Using normal density, mu=%v, sd=%v", mu, sd)
		density, err := dist.Normal(mu, sd)
		if err != nil {
			return nil, err
		}
		return &targetDist{
			density:  density,
			cdf:      func(x float64) float64 { return dist.CDFNormal(x, mu, sd) },
			quantile: func(prob float64) float64 { return mu + sd*dist.QuantileNormal(prob) },
		}, nil
	case "gamma":
		shape, scale, loc := 1.0, 1.0, 0.0
		if len(pars) > 0 {
			shape = pars[0]
		}
		if len(pars) > 1 {
			scale = pars[1]
		}
		if len(pars) > 2 {
			loc = pars[2]
		}
		log.Infof("Using gamma density, shape=%v, scale=%v, loc=%v", shape, scale, loc)
		density, err := dist.Gamma(shape, scale, loc)
		if err != nil {
			return nil, err
		}
		return &targetDist{
			density:  density,
			cdf:      func(x float64) float64 { return dist.CDFGamma(x-loc, shape, scale) },
			quantile: func(prob float64) float64 { return loc + dist.QuantileGamma(prob, shape, scale) },
		}, nil
	case "beta":
		p, q := 1.0, 1.0
		if len(pars) > 0 {
			p = pars[0]
		}
		if len(pars) > 1 {
			q = pars[1]
		}
		log.Infof("Using beta density, p=%v, q=%v", p, q)
		density, err := dist.Beta(p, q)
		if err != nil {
			return nil, err
		}
		return &targetDist{
			density:  density,
			cdf:      func(x float64) float64 { return dist.CDFBeta(x, p, q) },
			quantile: func(prob float64) float64 { return dist.QuantileBeta(prob, p, q) },
		}, nil
	case "uniform":
		min, max := 0.0, 1.0
		if len(pars) > 0 {
			min = pars[0]
		}
		if len(pars) > 1 {
			max = pars[1]
		}
		log.Infof("Using uniform density, min=%v, max=%v", min, max)
		density, err := dist.Uniform(min, max)
		if err != nil {
			return nil, err
		}
		return &targetDist{
			density: density,
			cdf: func(x float64) float64 {
				switch {
				case x <= min:
					return 0
				case x >= max:
					return 1
				}
				return (x - min) / (max - min)
			},
			quantile: func(prob float64) float64 { return min + prob*(max-min) },
		}, nil
	}
	return nil, fmt.Errorf("unknown density: %s", name)
}

// resolveSeed replaces a negative seed with a time-based one, so the
// logged seed always reproduces the run.
func resolveSeed(s int64) int64 {
	if s < 0 {
		log.Debug("Random seed from time")
		return time.Now().UnixNano()
	}
	return s
}

// getProposalFromString returns a proposal function from a name and
// its parameter.
func getProposalFromString(name string, sd, width float64) (mcmc.ProposalFunc, error) {
	switch name {
	case "normal":
		log.Infof("Using normal proposal, sd=%v", sd)
		return mcmc.NormalProposal(sd)
	case "uniform":
		log.Infof("Using uniform proposal, width=%v", width)
		return mcmc.UniformProposal(width)
	}
	return nil, fmt.Errorf("unknown proposal: %s", name)
}

func run() (summary *RunSummary) {
	startTime := time.Now()
	summary = &RunSummary{}

	pars, err := dist.ParseFloats(*densityPar)
	if err != nil {
		log.Fatal("Error parsing density parameters:", err)
	}

	target, err := getDensityFromString(*densityName, pars)
	if err != nil {
		log.Fatal("Configuration failed:", err)
	}
	density := target.density

	settings := mcmc.NewSettings()
	settings.ChainLength = *chainLength
	settings.Initial = *initial
	settings.BurnIn = *burnIn
	settings.Min = *minTheta
	settings.Max = *maxTheta
	settings.Seed = *seed

	if *startMode {
		x, err := optimize.FindMode(density, settings.Min, settings.Max, settings.Initial)
		if err != nil {
			log.Fatal("Mode search failed:", err)
		}
		log.Noticef("Starting chain from the density mode: %v", x)
		settings.Initial = x
	}

	var smpl sampler
	switch *method {
	case "hmc":
		h, err := mcmc.NewHMC(density, nil, settings)
		if err != nil {
			log.Fatal("Configuration failed:", err)
		}
		h.Eps = *eps
		h.Steps = *lsteps
		h.Quiet = *quiet
		h.AccPeriod = *accept
		smpl = h
	default:
		proposal, err := getProposalFromString(*proposalName, *proposalSD, *width)
		if err != nil {
			log.Fatal("Configuration failed:", err)
		}
		m, err := mcmc.NewMetropolis(density, proposal, settings)
		if err != nil {
			log.Fatal("Configuration failed:", err)
		}
		m.Quiet = *quiet
		m.AccPeriod = *accept
		smpl = m
	}
	log.Infof("Using %s sampling.", *method)

	f := os.Stdout
	if *outF != "" {
		f, err = os.Create(*outF)
		if err != nil {
			log.Fatal("Error creating trajectory file:", err)
		}
		defer f.Close()
	}
	smpl.SetTrajectoryOutput(f)
	smpl.SetReportPeriod(*report)

	if *checkpointF != "" {
		db, err := bolt.Open(*checkpointF, 0666, nil)
		if err != nil {
			log.Fatal("Error opening checkpoint file:", err)
		}
		defer db.Close()
		smpl.SetCheckpoint(checkpoint.NewChainIO(db, []byte("chain"), *checkpointSec))
	}

	smpl.WatchSignals(os.Interrupt)

	chain, err := smpl.Run()
	if err != nil {
		var evalErr *mcmc.EvaluationError
		if errors.As(err, &evalErr) {
			log.Fatalf("Sampling failed after %d samples: %v", evalErr.Iter, err)
		}
		log.Fatal("Sampling failed:", err)
	}

	if *chainLength > 1 {
		summary.AcceptanceRate = float64(smpl.Accepted()) / float64(*chainLength-1)
		log.Noticef("Acceptance rate: %.2f%%", 100*summary.AcceptanceRate)
	}

	if len(chain) > 0 {
		cs, err := newChainSummary(chain)
		if err != nil {
			log.Error("Error computing chain statistics:", err)
		} else {
			log.Noticef("n=%d, mean=%f, median=%f, sd=%f",
				cs.N, cs.Mean, cs.Median, cs.SD)
			log.Noticef("95%% interval: [%f, %f]", cs.Q025, cs.Q975)
			if target.quantile != nil {
				cs.Q025Target = target.quantile(0.025)
				cs.Q975Target = target.quantile(0.975)
				log.Noticef("Target 95%% interval: [%f, %f]",
					cs.Q025Target, cs.Q975Target)
			}
			if target.cdf != nil {
				cs.IntervalMass = target.cdf(cs.Q975) - target.cdf(cs.Q025)
				log.Noticef("Target mass in the sampled interval: %.3f",
					cs.IntervalMass)
			}
			summary.Chain = cs
		}
	}

	if *plotF != "" {
		if err := writeHistogram(chain, *plotF); err != nil {
			log.Error("Error writing histogram plot:", err)
		}
	}
	if *traceF != "" {
		if err := writeTrace(chain, *burnIn, *traceF); err != nil {
			log.Error("Error writing trace plot:", err)
		}
	}

	summary.Method = *method
	summary.ChainLength = *chainLength
	summary.BurnIn = *burnIn

	endTime := time.Now()

	deltaT := endTime.Sub(startTime)
	log.Noticef("Running time: %v", deltaT)
	summary.Time = deltaT.Seconds()

	return
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	// logging
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		defer f.Close()
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	logging.SetLevel(level, "metrop")
	logging.SetLevel(level, "mcmc")
	logging.SetLevel(level, "optimize")
	logging.SetLevel(level, "checkpoint")

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	*seed = resolveSeed(*seed)
	log.Infof("Random seed=%v", *seed)

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	summary := run()
	summary.Version = version
	summary.CommandLine = os.Args
	summary.Seed = *seed

	// output summary in json format
	if *jsonF != "" {
		j, err := json.Marshal(summary)
		if err != nil {
			log.Error(err)
		} else {
			log.Debug(string(j))
			f, err := os.Create(*jsonF)
			if err != nil {
				log.Error("Error creating json output file:", err)
			} else {
				f.Write(j)
				f.Close()
			}
		}
	}
}
