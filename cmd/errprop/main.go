package main

import (
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/zephyrtronium/errprop"
)

var (
	app = kingpin.New("errprop", "Gaussian propagation of uncertainty through symbolic expressions.")

	varsFile = app.Flag("vars", "TOML file of variable measurements.").Short('f').ExistingFile()
	given    = app.Flag("given", "name=mean,err variable definition (repeatable).").Short('g').Strings()
	passes   = app.Flag("passes", "Simplification passes for functions and derivatives.").Default("2").Int()
	prec     = app.Flag("prec", "Precision in bits of the sum of squared contributions.").Default("64").Uint()
	sig      = app.Flag("sig", "Significant digits of rounded uncertainties.").Default("2").Int()
	verbose  = app.Flag("verbose", "Log diagnostics.").Short('v').Bool()

	replCmd = app.Command("repl", "Interactive session.").Default()

	evalCmd   = app.Command("eval", "Propagate uncertainties through expressions.")
	evalExprs = evalCmd.Arg("expr", "Expression to evaluate.").Required().Strings()
	evalLaTeX = evalCmd.Flag("latex", "Print the LaTeX derivation.").Bool()

	statsCmd  = app.Command("stats", "Summarize repeated measurements.")
	statsVals = statsCmd.Arg("value", "Measured values.").Required().Strings()
)

var errColor = color.New(color.FgRed, color.Bold)

func main() {
	kingpin.Version("0.1.0")
	command, err := app.Parse(os.Args[1:])
	if err != nil {
		kingpin.Fatalf("parsing arguments: %s. Try --help", err)
		return
	}
	if *passes < 0 {
		kingpin.Fatalf("simplification passes (%d) must not be negative", *passes)
	}
	if *sig < 1 {
		kingpin.Fatalf("significant digits (%d) must be at least 1", *sig)
	}

	logger := newLogger(*verbose)
	defer logger.Sync()

	reg, err := loadRegistry(*varsFile, *given)
	if err != nil {
		fatal(err)
	}
	logger.Debugw("loaded variables", "count", reg.Len(), "file", *varsFile)
	opts := []errprop.PropagateOption{errprop.Passes(*passes), errprop.Prec(*prec)}

	switch command {
	case replCmd.FullCommand():
		s := newSession(reg, logger, opts, *sig)
		if err := s.run(); err != nil {
			fatal(err)
		}

	case evalCmd.FullCommand():
		failed := false
		for _, src := range *evalExprs {
			if err := evaluate(os.Stdout, src, reg, logger, *passes, opts, report{sig: *sig, latex: *evalLaTeX}); err != nil {
				errColor.Fprintf(os.Stderr, "%s: %v\n", src, err)
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}

	case statsCmd.FullCommand():
		vals := make([]float64, len(*statsVals))
		for i, s := range *statsVals {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				fatal(errors.Wrapf(err, "value %d", i+1))
			}
			vals[i] = v
		}
		s, err := errprop.Summarize(vals)
		if err != nil {
			fatal(err)
		}
		printSummary(os.Stdout, s)
	}
}

// evaluate parses and propagates one expression using only known variables.
func evaluate(w io.Writer, src string, reg *errprop.Registry, logger *zap.SugaredLogger, passes int, opts []errprop.PropagateOption, rep report) error {
	f, err := errprop.Parse(src, reg, errprop.SimplifyPasses(passes))
	if err != nil {
		return err
	}
	logger.Debugw("parsed", "expr", f)
	r, err := errprop.Propagate(f, reg, opts...)
	if err != nil {
		return err
	}
	rep.printResult(w, r)
	return nil
}

func newLogger(verbose bool) *zap.SugaredLogger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core, zap.AddCaller()).Named("errprop").Sugar()
}

func fatal(err error) {
	errColor.Fprintln(os.Stderr, err)
	os.Exit(1)
}
