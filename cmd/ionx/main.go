// Command ionx is a small demonstration CLI exercising the decimal,
// ionpath, ionextract and ionevent packages against an in-memory Ion
// fixture (see fixture.go) — there being no Ion codec in this module to
// feed it from a real file (see ionrw's package doc).
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ion-core/ionx/decimal"
	"github.com/ion-core/ionx/ionevent"
	"github.com/ion-core/ionx/ionextract"
	"github.com/ion-core/ionx/ionpath"
	"github.com/ion-core/ionx/ionrw"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ionx",
		Short: "ionx — decimal arithmetic, path compilation and streaming extraction over Ion values",
	}

	rootCmd.AddCommand(
		newDecimalCmd(),
		newPathCmd(),
		newExtractCmd(),
		newEquivCmd(),
	)
	return rootCmd
}

func newDecimalCmd() *cobra.Command {
	var precision int
	var roundingName string

	cmd := &cobra.Command{
		Use:   "decimal [add|sub|mul|quo] A B",
		Short: "Evaluate a binary decimal operation with the given context",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := args[0]
			a, err := decimal.Parse(args[1])
			if err != nil {
				return err
			}
			b, err := decimal.Parse(args[2])
			if err != nil {
				return err
			}

			mode, err := parseRoundingMode(roundingName)
			if err != nil {
				return err
			}
			ctx := &decimal.Context{Precision: precision, RoundingMode: mode}

			var result decimal.Decimal
			switch op {
			case "add":
				result, err = a.Add(ctx, b)
			case "sub":
				result, err = a.Sub(ctx, b)
			case "mul":
				result, err = a.Mul(ctx, b)
			case "quo":
				result, err = a.Quo(ctx, b)
			default:
				return fmt.Errorf("unknown operation %q, want add, sub, mul or quo", op)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (status: %s)\n", result.String(), ctx.Status)
			return nil
		},
	}
	cmd.Flags().IntVar(&precision, "precision", decimal.DefaultPrecision, "working precision, in significant digits")
	cmd.Flags().StringVar(&roundingName, "rounding", "half-even", "rounding mode: half-even, half-up, half-down, up, down, ceiling, floor")
	return cmd
}

func parseRoundingMode(name string) (decimal.RoundingMode, error) {
	switch name {
	case "half-even":
		return decimal.RoundHalfEven, nil
	case "half-up":
		return decimal.RoundHalfUp, nil
	case "half-down":
		return decimal.RoundHalfDown, nil
	case "up":
		return decimal.RoundUp, nil
	case "down":
		return decimal.RoundDown, nil
	case "ceiling":
		return decimal.RoundCeiling, nil
	case "floor":
		return decimal.RoundFloor, nil
	default:
		return 0, fmt.Errorf("unknown rounding mode %q", name)
	}
}

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path [component...]",
		Short: "Compile a path expression from Ion and print it back",
		Long: "Each component is either a field name, a non-negative integer ordinal, " +
			"or \"*\" for a wildcard. The components are assembled into an Ion sexp and " +
			"compiled via ionpath.FromIon, exercising the same parser a registered " +
			"extractor path would go through.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("at least one path component is required")
			}
			sexp := sexpFromArgs(args)
			r := newTreeReader(sexp)
			if _, ok, err := r.Next(); err != nil || !ok {
				return fmt.Errorf("internal error building path fixture: %v", err)
			}
			p, err := ionpath.FromIon(r)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.String())
			return nil
		},
	}
}

func sexpFromArgs(args []string) *node {
	children := make([]*node, len(args))
	for i, a := range args {
		if a == "*" {
			n := strNode("*")
			n.annotations = append(n.annotations, "$ion_wildcard")
			children[i] = n
			continue
		}
		if v, err := strconv.Atoi(a); err == nil {
			children[i] = intNode(int64(v))
			continue
		}
		children[i] = strNode(a)
	}
	return &node{typ: ionrw.TypeSexp, children: children}
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract [component...]",
		Short: "Register the given path against the built-in demo tree and print every match",
		Long: "The demo tree is {abc: def, foo: {bar:[1, 2, 3]}} — the fixture spec " +
			"scenarios E2 and E3 are defined against.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"foo", "bar", "*"}
			}
			sexp := sexpFromArgs(args)
			pr := newTreeReader(sexp)
			if _, ok, err := pr.Next(); err != nil || !ok {
				return fmt.Errorf("internal error building path fixture: %v", err)
			}
			path, err := ionpath.FromIon(pr)
			if err != nil {
				return err
			}

			ex, err := ionextract.New(ionextract.Options{})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var matches int
			if _, err := ex.AddPath(path, func(r ionrw.Reader, p ionpath.Path) (ionextract.ControlDirective, error) {
				matches++
				fmt.Fprintf(out, "match %d: path %s, type %s\n", matches, p.String(), r.Type())
				return ionextract.Next, nil
			}); err != nil {
				return err
			}

			if err := ex.Match(newTreeReader(demoTree())); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d match(es)\n", matches)
			return nil
		},
	}
}

func newEquivCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equiv",
		Short: "Demonstrate struct bag-equality: {a:1, a:1} vs {a:1, a:1} vs {a:1}",
		RunE: func(cmd *cobra.Command, args []string) error {
			var c ionevent.Comparator

			aa := structNode(field("a", intNode(1)), field("a", intNode(1)))
			aaAgain := structNode(field("a", intNode(1)), field("a", intNode(1)))
			aOnly := structNode(field("a", intNode(1)))

			out := cmd.OutOrStdout()
			report := func(name string, x, y *node) error {
				sx, err := ionevent.Materialize(newTreeReader(x))
				if err != nil {
					return err
				}
				sy, err := ionevent.Materialize(newTreeReader(y))
				if err != nil {
					return err
				}
				eq := c.ValuesEquivalent(sx[:len(sx)-1], sy[:len(sy)-1])
				fmt.Fprintf(out, "%s: %v\n", name, eq)
				return nil
			}

			if err := report("{a:1,a:1} == {a:1,a:1}", aa, aaAgain); err != nil {
				return err
			}
			return report("{a:1,a:1} == {a:1}", aa, aOnly)
		},
	}
}
