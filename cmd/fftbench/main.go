package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/nulltea/evaldomain/core"
	"github.com/nulltea/evaldomain/domain"
	"github.com/nulltea/evaldomain/fft"
	"github.com/nulltea/evaldomain/poly"
	"github.com/uber-go/tally"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type config struct {
	modulus   uint64
	lanes     int
	minLogN   int
	maxLogN   int
	iters     int
	seed      uint64
	trace     bool
	verbosity int
}

func main() {
	var cfg config
	flag.Uint64Var(&cfg.modulus, "modulus", core.Modulus57, "Prime field modulus")
	flag.IntVar(&cfg.lanes, "lanes", 0, "Number of parallel lanes, 0 for GOMAXPROCS")
	flag.IntVar(&cfg.minLogN, "minLogN", 10, "Smallest log2 domain size")
	flag.IntVar(&cfg.maxLogN, "maxLogN", 16, "Largest log2 domain size")
	flag.IntVar(&cfg.iters, "iters", 10, "Iterations per operation and size")
	flag.Uint64Var(&cfg.seed, "seed", 0, "Seed of the random inputs")
	flag.BoolVar(&cfg.trace, "trace", false, "Export spans to stdout")
	flag.IntVar(&cfg.verbosity, "v", 0, "Log verbosity")
	flag.Parse()

	stdr.SetVerbosity(cfg.verbosity)
	runID := uuid.New().String()
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithValues("run", runID)
	core.SetLogger(logger)

	if err := run(cfg, runID, logger); err != nil {
		logger.Error(err, "benchmark failed")
		os.Exit(1)
	}
}

func run(cfg config, runID string, logger logr.Logger) error {
	if cfg.minLogN < 0 || cfg.minLogN > cfg.maxLogN || cfg.iters <= 0 {
		return fmt.Errorf("invalid configuration: minLogN %d, maxLogN %d, iters %d", cfg.minLogN, cfg.maxLogN, cfg.iters)
	}

	if cfg.trace {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return err
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
		otel.SetTracerProvider(tp)
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error(err, "failed to shut down tracer provider")
			}
		}()
	}

	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:   "fftbench",
		Tags:     map[string]string{"run": runID},
		Reporter: newLogReporter(logger),
	}, time.Second)
	defer closer.Close()

	field, err := core.NewPrimeField(cfg.modulus)
	if err != nil {
		return err
	}
	engine := fft.NewEngine(field, fft.NewPool(cfg.lanes))

	if cfg.maxLogN > field.TwoAdicity() {
		return domain.Error.Wrap(domain.ErrPolynomialDegreeTooLarge)
	}

	logger.Info("benchmark", "modulus", field.Modulus(), "twoAdicity", field.TwoAdicity(), "lanes", engine.Pool().Lanes(), "iters", cfg.iters)

	root := core.StartSpan("fftbench", nil)
	defer root.End()

	for logN := cfg.minLogN; logN <= cfg.maxLogN; logN++ {
		n := 1 << logN
		coeffs, err := core.RandomElements(field, n, cfg.seed+uint64(logN))
		if err != nil {
			return err
		}

		d, err := domain.FromCoeffs(engine, coeffs)
		if err != nil {
			return err
		}

		// the square of half has n-1 coefficients and fits the domain of size n
		half := poly.NewDensePoly(coeffs[:max(n/2, 1)])

		ops := []struct {
			name string
			fn   func() error
		}{
			{"fft", func() error { d.FFT(); return nil }},
			{"ifft", func() error { d.IFFT(); return nil }},
			{"coset_fft", func() error { d.CosetFFT(); return nil }},
			{"icoset_fft", func() error { d.ICosetFFT(); return nil }},
			{"fft_mul", func() error {
				_, err := half.FFTMul(engine, half)
				return err
			}},
		}

		sizeScope := scope.Tagged(map[string]string{"logN": fmt.Sprint(logN)})
		span := core.StartSpan(fmt.Sprintf("logN=%d", logN), root)
		span.SetAttributes(attribute.Int("logN", logN), attribute.Int("size", n))

		for _, op := range ops {
			timer := sizeScope.Timer(op.name)
			samples := make([]float64, cfg.iters)
			for i := range samples {
				start := time.Now()
				if err := op.fn(); err != nil {
					span.End()
					return err
				}
				elapsed := time.Since(start)
				timer.Record(elapsed)
				samples[i] = float64(elapsed.Microseconds())
			}
			sizeScope.Counter("ops").Inc(int64(cfg.iters))

			if err := report(op.name, logN, samples); err != nil {
				span.End()
				return err
			}
		}

		span.End()
	}

	return nil
}

func report(name string, logN int, samples []float64) error {
	mean, err := stats.Mean(samples)
	if err != nil {
		return err
	}
	median, err := stats.Median(samples)
	if err != nil {
		return err
	}
	stddev, err := stats.StandardDeviation(samples)
	if err != nil {
		return err
	}

	fmt.Printf("%-10s n=%-9s mean=%-12s median=%-12s stddev=%s\n",
		name,
		humanize.Comma(int64(1)<<logN),
		time.Duration(mean)*time.Microsecond,
		time.Duration(median)*time.Microsecond,
		time.Duration(stddev)*time.Microsecond,
	)

	return nil
}
