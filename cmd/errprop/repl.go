package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zephyrtronium/errprop"
)

const help = `commands:
  = EXPR            propagate uncertainties through EXPR
  : NAME [VALUES]   define NAME as "mean, err", an exact value, or samples
  l                 list variables
  ?                 show this help
  q                 quit
tokens must be separated by spaces: x ^ 2 * sin (y / 2)
`

// session is an interactive prompt. Variables that a function uses before
// they are defined are asked for as they are met.
type session struct {
	line *liner.State
	reg  *errprop.Registry
	log  *zap.SugaredLogger
	opts []errprop.PropagateOption
	rep  report
	out  io.Writer
}

func newSession(reg *errprop.Registry, log *zap.SugaredLogger, opts []errprop.PropagateOption, sig int) *session {
	return &session{reg: reg, log: log, opts: opts, rep: report{sig: sig, latex: true}, out: os.Stdout}
}

func (s *session) run() error {
	s.line = liner.NewLiner()
	defer s.line.Close()
	s.line.SetCtrlCAborts(true)

	fmt.Fprintln(s.out, `errprop: "=" function, ":" variable, "?" help, "q" quit`)
	for {
		in, err := s.prompt("> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if in == "" {
			continue
		}
		s.line.AppendHistory(in)
		c, sz := utf8.DecodeRuneInString(in)
		rest := strings.TrimSpace(in[sz:])
		switch c {
		case '=':
			err = s.function(rest)
		case ':':
			err = s.variable(rest)
		case 'l':
			printVars(s.out, s.reg)
		case '?':
			fmt.Fprint(s.out, help)
		case 'q':
			return nil
		default:
			err = errors.Errorf("unknown command %q; type ? for help", c)
		}
		if err != nil {
			s.log.Debugw("command failed", "input", in, "error", err)
			errColor.Fprintln(s.out, err)
		}
	}
}

func (s *session) prompt(p string) (string, error) {
	in, err := s.line.Prompt(p)
	return strings.TrimSpace(in), err
}

// function propagates uncertainties through an expression, asking for the
// values of variables it does not know.
func (s *session) function(src string) error {
	if src == "" {
		var err error
		if src, err = s.prompt("f = "); err != nil {
			return errors.Wrap(err, "reading function")
		}
	}
	f, err := errprop.Parse(src, s.reg, errprop.OnUnknown(s.ask))
	var merr *errprop.MalformedExpressionError
	if errors.As(err, &merr) {
		// Point at the offending token below the echoed input.
		fmt.Fprintf(s.out, "  %s\n  %s^\n", src, strings.Repeat(" ", merr.Pos()-1))
	}
	if err != nil {
		return err
	}
	s.log.Debugw("parsed", "expr", f, "vars", f.Vars())
	r, err := errprop.Propagate(f, s.reg, s.opts...)
	if err != nil {
		return err
	}
	s.rep.printResult(s.out, r)
	return nil
}

// variable defines a variable from "NAME VALUES" or prompts for the values.
func (s *session) variable(def string) error {
	fields := strings.Fields(def)
	if len(fields) == 0 {
		return errors.New("usage: : NAME [VALUES]")
	}
	name := fields[0]
	if !errprop.ValidName(name) || errprop.Reserved(name) {
		return &errprop.NameError{Name: name}
	}
	vals := strings.TrimSpace(def[len(name):])
	if vals == "" {
		m, err := s.ask(name)
		if err != nil {
			return err
		}
		return s.reg.Set(name, m)
	}
	m, sum, err := parseMeasurement(vals)
	if err != nil {
		return errors.Wrapf(err, "defining %s", name)
	}
	if err := s.reg.Set(name, m); err != nil {
		return err
	}
	s.report(name, m, sum)
	return nil
}

// ask prompts for the measurement of a variable until it is given validly. It
// also resolves variables met while parsing.
func (s *session) ask(name string) (errprop.Measurement, error) {
	for {
		in, err := s.prompt(name + " (mean, err or samples): ")
		if err != nil {
			return errprop.Measurement{}, errors.Wrapf(err, "reading %s", name)
		}
		m, sum, err := parseMeasurement(in)
		if err == nil && (m.Err < 0 || math.IsNaN(m.Err)) {
			err = &errprop.UncertaintyError{Name: name, Err: m.Err}
		}
		if err != nil {
			errColor.Fprintln(s.out, err)
			continue
		}
		s.report(name, m, sum)
		return m, nil
	}
}

func (s *session) report(name string, m errprop.Measurement, sum *errprop.Summary) {
	if sum != nil {
		printSummary(s.out, *sum)
	}
	fmt.Fprintf(s.out, "%s = %s ± %s\n", name, num(m.Mean), num(m.Err))
}
