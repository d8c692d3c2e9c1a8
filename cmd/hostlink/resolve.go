package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hostlink/internal/binder"
	"hostlink/internal/diag"
	"hostlink/internal/hostreflect"
)

var (
	resolveStatic  bool
	resolveNoThrow bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve member...",
	Short: "Resolve member names against the demo Point receiver",
	Long:  `Resolve builds a guarded rule per member name and reports its guard, body shape and replay outcome`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveStatic, "static", false, "resolve in static context (against the type, not an instance)")
	resolveCmd.Flags().BoolVar(&resolveNoThrow, "no-throw", false, "return the failure sentinel instead of raising on missing members")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !useColor(cmd, os.Stdout) {
		color.NoColor = true
	}
	okColor := color.New(color.FgGreen)
	errColor := color.New(color.FgRed)

	b := binder.New(binder.Options{AllowPrivateBinding: cfg.Binder.AllowPrivateBinding})
	pointType := hostreflect.TypeOf(Point{}, "Geometry.Point")
	recv := pointType.Value(Point{X: 3, Y: 4})

	reqs := make([]binder.Request, len(args))
	for i, name := range args {
		reqs[i] = binder.Request{
			Recv:      recv,
			Name:      name,
			StaticCtx: resolveStatic,
			NoThrow:   resolveNoThrow,
		}
	}
	rules, err := binder.Warm(context.Background(), b, reqs, 0)
	if err != nil {
		return err
	}

	bag := diag.NewBag(100)
	for i, rule := range rules {
		name := args[i]
		fmt.Fprintf(cmd.OutOrStdout(), "%s.%s\n", pointType.FullName(), name)
		fmt.Fprintf(cmd.OutOrStdout(), "  guard: %s\n", rule.Guard().Kind)
		for _, step := range rule.Body().Steps() {
			fmt.Fprintf(cmd.OutOrStdout(), "  step:  %s\n", step.Kind)
		}
		value, invokeErr := rule.Invoke(recv)
		if invokeErr != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %v\n", errColor.Sprint("error:"), invokeErr)
			bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.CodeOf(invokeErr),
				Message:  invokeErr.Error(),
				Subject:  pointType.FullName(),
				Member:   name,
			})
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %v\n", okColor.Sprint("value:"), value.Data)
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if bag.HasErrors() && !quiet {
		fmt.Fprintln(cmd.ErrOrStderr())
		for _, d := range bag.Items() {
			fmt.Fprintln(cmd.ErrOrStderr(), diag.Format(d))
		}
	}
	return nil
}
