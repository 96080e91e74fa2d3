package main

import (
	"bufio"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/naoina/toml"
	"github.com/pkg/errors"

	"github.com/zephyrtronium/errprop"
)

// varsConfig is the layout of a variables file:
//
//	[Vars.x]
//	Mean = 3.0
//	Err = 0.1
type varsConfig struct {
	Vars map[string]errprop.Measurement
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

func loadVars(file string, cfg *varsConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// loadRegistry builds the registry from the variables file, if any, and then
// the --given definitions, which override the file.
func loadRegistry(file string, given []string) (*errprop.Registry, error) {
	reg := errprop.NewRegistry()
	if file != "" {
		var cfg varsConfig
		if err := loadVars(file, &cfg); err != nil {
			return nil, err
		}
		names := make([]string, 0, len(cfg.Vars))
		for name := range cfg.Vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := reg.Set(name, cfg.Vars[name]); err != nil {
				return nil, errors.Wrap(err, file)
			}
		}
	}
	for _, g := range given {
		name, m, err := parseGiven(g)
		if err != nil {
			return nil, err
		}
		if err := reg.Set(name, m); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// parseGiven parses a name=mean,err definition.
func parseGiven(s string) (string, errprop.Measurement, error) {
	d := strings.SplitN(s, "=", 2)
	if len(d) != 2 {
		return "", errprop.Measurement{}, errors.Errorf(`variable definitions must be "name=mean,err", not %q`, s)
	}
	name := strings.TrimSpace(d[0])
	m, _, err := parseMeasurement(d[1])
	if err != nil {
		return "", errprop.Measurement{}, errors.Wrapf(err, "defining %s", name)
	}
	return name, m, nil
}

// parseMeasurement parses a measurement written as "mean, err", as a single
// exact value, or as a list of repeated measurements separated by spaces. In
// the last case the summary of the samples is also returned.
func parseMeasurement(s string) (errprop.Measurement, *errprop.Summary, error) {
	if strings.Contains(s, ",") {
		d := strings.Split(s, ",")
		if len(d) != 2 {
			return errprop.Measurement{}, nil, errors.Errorf("want mean, err but got %d values", len(d))
		}
		mean, err := parseValue(d[0])
		if err != nil {
			return errprop.Measurement{}, nil, err
		}
		e, err := parseValue(d[1])
		if err != nil {
			return errprop.Measurement{}, nil, err
		}
		return errprop.Measurement{Mean: mean, Err: e}, nil, nil
	}
	fields := strings.Fields(s)
	switch len(fields) {
	case 0:
		return errprop.Measurement{}, nil, errors.New("no value")
	case 1:
		v, err := parseValue(fields[0])
		return errprop.Measurement{Mean: v}, nil, err
	}
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseValue(f)
		if err != nil {
			return errprop.Measurement{}, nil, err
		}
		vals[i] = v
	}
	sum, err := errprop.Summarize(vals)
	if err != nil {
		return errprop.Measurement{}, nil, err
	}
	return sum.Measurement(), &sum, nil
}

func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.Wrap(err, "bad number")
	}
	return v, nil
}
