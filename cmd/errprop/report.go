package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/zephyrtronium/errprop"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// report controls how propagation results are written.
type report struct {
	// sig is the number of significant digits of the rounded uncertainty.
	sig   int
	latex bool
}

// printResult writes the value and uncertainty of a propagation followed by
// the contribution of each variable.
func (rep report) printResult(w io.Writer, r *errprop.Result) {
	fmt.Fprintf(w, "f = %v\n", r.Func)
	fmt.Fprintf(w, "  = %s ± %s\n", num(r.Mean), num(r.Err))
	mean, err := errprop.Measurement{Mean: r.Mean, Err: r.Err}.Round(rep.sig)
	fmt.Fprintf(w, "  ≈ %s ± %s\n", mean, err)
	if len(r.Terms) != 0 {
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Variable", "Mean", "Err", "∂f/∂v", "|∂f/∂v·Δv|"})
		table.SetAlignment(tablewriter.ALIGN_RIGHT)
		for _, t := range r.Terms {
			table.Append([]string{t.Name, num(t.Mean), num(t.Err), num(t.Slope), num(t.Contribution())})
		}
		table.Render()
	}
	if !rep.latex {
		return
	}
	f, _ := r.Func.LaTeX(nil)
	fmt.Fprintf(w, "f = %s\n", f)
	for _, t := range r.Terms {
		fmt.Fprintln(w, t.LaTeX())
	}
	fmt.Fprintf(w, `\Delta f = %s`+"\n", r.Formula())
	fmt.Fprintf(w, `\Delta f = %s`+"\n", r.Numbers())
}

// printSummary writes the statistics of a series of measurements.
func printSummary(w io.Writer, s errprop.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"N", "Mean", "Variance", "Deviation", "Err", "Rel. err of err"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.Append([]string{strconv.Itoa(s.N), num(s.Mean), num(s.Variance), num(s.Deviation), num(s.Err), num(s.ErrOfErr)})
	table.Render()
}

// printVars writes the defined variables in definition order.
func printVars(w io.Writer, reg *errprop.Registry) {
	if reg.Len() == 0 {
		fmt.Fprintln(w, "no variables defined")
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Variable", "Mean", "Err"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, name := range reg.Names() {
		m, _ := reg.Lookup(name)
		table.Append([]string{name, num(m.Mean), num(m.Err)})
	}
	table.Render()
}
