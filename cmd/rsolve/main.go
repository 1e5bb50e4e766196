// Command rsolve compiles a quantified propositional formula, extended with
// cardinality constraints and least/greatest fixed points, to a BDD and
// reports on it: truth table, satisfying models, derived variable ordering,
// dot graphs, and optional repeated-run benchmarking.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"sort"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/dalzilio/symlogic"
	"github.com/dalzilio/symlogic/internal/eval"
	"github.com/dalzilio/symlogic/internal/export"
	"github.com/dalzilio/symlogic/internal/lexer"
	"github.com/dalzilio/symlogic/internal/order"
	"github.com/dalzilio/symlogic/internal/parser"
)

// exit codes: 0 success, 1 formula error (lex/parse/eval) or file I/O error,
// 2 usage or other error.
const (
	exitOK      = 0
	exitFormula = 1
	exitUsage   = 2
)

type options struct {
	evaluate       string
	truthtable     bool
	vars           bool
	model          bool
	dot            string
	parsetree      string
	ordering       string
	exportOrdering bool
	filter         string
	retainChoices  string
	benchmark      int
	plot           bool
}

func main() {
	opts := &options{}
	root := &cobra.Command{
		Use:           "rsolve [FILE]",
		Short:         "decide quantified propositional formulas with cardinality constraints and fixed points",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			return run(opts, file)
		},
	}
	flags := root.Flags()
	flags.StringVarP(&opts.evaluate, "evaluate", "e", "", "parse the formula given inline instead of reading FILE")
	flags.BoolVarP(&opts.truthtable, "truthtable", "t", false, "print the truth table to stdout")
	flags.BoolVarP(&opts.vars, "vars", "v", false, "print the variables that are true in one satisfying assignment")
	flags.BoolVarP(&opts.model, "model", "m", false, "compute a single satisfying model")
	flags.StringVarP(&opts.dot, "dot", "d", "", "write the BDD to a graphviz dot file ('-' for stdout)")
	flags.StringVarP(&opts.parsetree, "parsetree", "p", "", "write the parse tree to a graphviz dot file ('-' for stdout)")
	flags.StringVarP(&opts.ordering, "ordering", "o", "", "read a custom variable ordering, one name per line")
	flags.BoolVarP(&opts.exportOrdering, "export-ordering", "r", false, "print the derived variable ordering to stdout")
	flags.StringVarP(&opts.filter, "filter", "f", "any", "restrict truth-table rows to 'true', 'false', or 'any'")
	flags.StringVarP(&opts.retainChoices, "retain-choices", "c", "any", "collapse the result to rows matching 'true', 'false', or 'any' before reporting")
	flags.IntVarP(&opts.benchmark, "benchmark", "b", 1, "repeat the solve N times and report runtime statistics to stderr")
	flags.BoolVarP(&opts.plot, "plot", "g", false, "show an ASCII plot of the runtime distribution (with -b N>1)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	switch err.(type) {
	case *lexer.Error, *parser.Error:
		return exitFormula
	}
	switch err.(type) {
	case *eval.UnresolvedVarError, *eval.UnresolvedFixpointVarError, *eval.TypeMismatchError:
		return exitFormula
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return exitFormula
	}
	return exitUsage
}

func run(opts *options, file string) error {
	if !isFilterValue(opts.filter) {
		return fmt.Errorf("invalid --filter %q: want 'true', 'false', or 'any'", opts.filter)
	}
	if !isFilterValue(opts.retainChoices) {
		return fmt.Errorf("invalid --retain-choices %q: want 'true', 'false', or 'any'", opts.retainChoices)
	}

	if opts.evaluate != "" && file != "" {
		return fmt.Errorf("--evaluate and FILE are mutually exclusive")
	}
	src, err := readSource(opts.evaluate, file)
	if err != nil {
		return err
	}

	tree, err := parser.Parse(src)
	if err != nil {
		return err
	}

	override, err := readOrdering(opts.ordering)
	if err != nil {
		return err
	}
	if err := order.ValidateOverride(tree, override); err != nil {
		return err
	}
	names := order.Derive(tree, override)

	if opts.exportOrdering {
		for _, n := range names {
			fmt.Println(n)
		}
	}

	if opts.parsetree != "" {
		if err := writeTo(opts.parsetree, func(w io.Writer) error {
			return export.ParseTreeDot(w, tree)
		}); err != nil {
			return err
		}
	}

	varIndex := make(map[string]int, len(names))
	for i, n := range names {
		varIndex[n] = i
	}

	set, err := symlogic.New(len(names))
	if err != nil {
		return err
	}

	var result symlogic.Node
	runEval := func() error {
		result, err = eval.New(set, varIndex).Eval(tree)
		return err
	}

	repeat := opts.benchmark
	if repeat < 1 {
		repeat = 1
	}
	times := make([]float64, 0, repeat)
	for i := 0; i < repeat; i++ {
		start := time.Now()
		if err := runEval(); err != nil {
			return err
		}
		times = append(times, time.Since(start).Seconds())
		if opts.benchmark > 1 {
			fmt.Fprintf(os.Stderr, "finished %d/%d runs\n", i+1, repeat)
		}
	}

	if opts.benchmark > 1 {
		reportBenchmark(times, opts.plot)
	}

	result = retainChoice(set, result, len(names), opts.retainChoices)

	if opts.model {
		result = firstModel(set, result)
	}

	rows := result
	if opts.filter == "false" {
		rows = set.Not(result)
	}

	if opts.truthtable {
		if err := export.TruthTable(set, os.Stdout, rows, names); err != nil {
			return err
		}
	}
	if opts.vars {
		err := set.Allsat(rows, func(assign []int) error {
			for i, v := range assign {
				if v == 1 && i < len(names) {
					fmt.Println(names[i])
				}
			}
			return errStopIteration
		})
		if err != nil && err != errStopIteration {
			return err
		}
	}
	if opts.dot != "" {
		if err := writeTo(opts.dot, func(w io.Writer) error {
			return export.Dot(set, w, result)
		}); err != nil {
			return err
		}
	}

	if !opts.truthtable && !opts.vars && opts.dot == "" && !opts.exportOrdering && opts.parsetree == "" {
		if set.Equal(result, set.True()) {
			fmt.Println("true")
		} else if set.Equal(result, set.False()) {
			fmt.Println("false")
		} else {
			sat := set.Satcount(result)
			fmt.Printf("satisfiable: %s assignment(s)\n", sat.String())
		}
	}

	return nil
}

func isFilterValue(v string) bool {
	return v == "true" || v == "false" || v == "any"
}

// firstModel returns the cube for a single satisfying assignment of result,
// picking the first one Allsat reports and skipping don't-care positions.
func firstModel(set symlogic.Set, result symlogic.Node) symlogic.Node {
	var lits []symlogic.Node
	err := set.Allsat(result, func(assign []int) error {
		for i, v := range assign {
			switch v {
			case 1:
				lits = append(lits, set.Ithvar(i))
			case 0:
				lits = append(lits, set.NIthvar(i))
			}
		}
		return errStopIteration
	})
	if err != nil && err != errStopIteration {
		return result
	}
	if len(lits) == 0 {
		return result
	}
	return set.And(lits...)
}

var errStopIteration = fmt.Errorf("stop iteration")

// retainChoice cofactors result down to the variables that are still a free
// choice within the truth-value space named by value, dropping every
// variable whose value is forced throughout that space. "any" leaves result
// untouched; "true" restricts within result itself, "false" within its
// negation, and the forced cube is computed on that target before Restrict
// is applied and, for "false", the result is negated back.
func retainChoice(set symlogic.Set, result symlogic.Node, varnum int, value string) symlogic.Node {
	if value == "any" {
		return result
	}
	target := result
	if value == "false" {
		target = set.Not(result)
	}
	var forced []symlogic.Node
	for i := 0; i < varnum; i++ {
		switch {
		case set.Equal(set.And(target, set.NIthvar(i)), set.False()):
			forced = append(forced, set.Ithvar(i))
		case set.Equal(set.And(target, set.Ithvar(i)), set.False()):
			forced = append(forced, set.NIthvar(i))
		}
	}
	if len(forced) == 0 {
		return result
	}
	simplified := set.Restrict(target, set.And(forced...))
	if value == "false" {
		return set.Not(simplified)
	}
	return simplified
}

func readSource(inline, file string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	var r io.Reader
	if file == "" || file == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(file)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readOrdering(filename string) ([]string, error) {
	if filename == "" {
		return nil, nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names, scanner.Err()
}

func writeTo(filename string, fn func(io.Writer) error) error {
	if filename == "-" {
		return fn(os.Stdout)
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f)
}

func reportBenchmark(times []float64, plot bool) {
	min, max, median, mean, stddev := stats(times)
	fmt.Fprintf(os.Stderr, "Runtime report for %d iterations:\n", len(times))
	fmt.Fprintf(os.Stderr, "Min runtime: %.6fs\n", min)
	fmt.Fprintf(os.Stderr, "Max runtime: %.6fs\n", max)
	fmt.Fprintf(os.Stderr, "Median runtime: %.6fs\n", median)
	fmt.Fprintf(os.Stderr, "Mean runtime: %.6fs\n", mean)
	fmt.Fprintf(os.Stderr, "Standard deviation: %.6fs\n", stddev)
	if plot && len(times) > 1 {
		graph := asciigraph.Plot(times, asciigraph.Height(10), asciigraph.Caption("runtime per iteration (s)"))
		fmt.Println(graph)
	}
}

// stats computes minimum, maximum, median, mean, and standard deviation
// over a set of runtime samples.
func stats(samples []float64) (min, max, median, mean, stddev float64) {
	sorted := append([]float64{}, samples...)
	sort.Float64s(sorted)

	median = sorted[len(sorted)/2]
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean = sum / float64(len(sorted))

	var sumSquares float64
	for _, v := range sorted {
		d := v - mean
		sumSquares += d * d
	}
	stddev = math.Sqrt(sumSquares / float64(len(sorted)))

	min = sorted[0]
	max = sorted[len(sorted)-1]
	return
}
