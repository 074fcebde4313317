// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mikecarlton/dimcalc/internal/config"
	"github.com/mikecarlton/dimcalc/internal/history"
	"github.com/mikecarlton/dimcalc/pkg/algebra"
	"github.com/mikecarlton/dimcalc/pkg/number"
)

// app is the state shared by the commands once flags are parsed
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
	engine  *algebra.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "dimcalc [ARGUMENTS]",
		Short: "RPN calculator with dimensional analysis",
		Long: heredoc.Doc(`
			Evaluates its arguments as an RPN expression and prints the stack.

			Arguments:
			  numbers         pushed as dimensionless values
			  unit symbols    given to a bare number, otherwise a conversion
			                  (see 'dimcalc units')
			  * x . •         multiply, deriving the result unit
			  /               divide, deriving the result unit
			  + -             add or subtract in the left operand's unit
			  r               reciprocal
			  d (dup)         duplicate the top of the stack
			  p (pop)         drop the top of the stack
			  swap            exchange the top two values

			Example:
			  dimcalc 10 m 2 s / 5 s x
		`),
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.run(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./"+config.DefaultFile+")")
	flags.Int32P("precision", "p", number.PRECISION, "decimal places kept by inexact divisions")
	flags.Bool("verify", false, "check every derived unit against its operands' dimensions")
	flags.BoolP("trace", "t", false, "trace rule resolution on stderr")
	flags.Bool("history", false, "record evaluations in the history database")
	flags.String("history-path", "", "history database (default: ~/.dimcalc/history.sqlite3)")

	// once evaluation starts every argument is an operand, so "5 -3 x" works
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(newUnitsCmd(a))
	rootCmd.AddCommand(newRulesCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))

	return rootCmd
}

// execute runs cmd over the command line arguments.
func execute(cmd *cobra.Command, args []string) error {
	cmd.SetArgs(operandArgs(cmd.PersistentFlags(), args))
	return cmd.Execute()
}

// operandArgs ends flag parsing before a leading negative number, so that
// "-3 m" is evaluated rather than read as the shorthand flag -3.
func operandArgs(flags *pflag.FlagSet, args []string) []string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || !strings.HasPrefix(arg, "-") {
			return args
		}
		if _, ok := number.Parse(arg); ok {
			return slices.Insert(slices.Clone(args), i, "--")
		}
		if takesValue(flags, arg) {
			i++
		}
	}
	return args
}

// takesValue reports whether arg is a flag whose value is the next argument
func takesValue(flags *pflag.FlagSet, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	var flag *pflag.Flag
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		flag = flags.Lookup(name)
	} else if name := arg[1:]; len(name) == 1 {
		flag = flags.ShorthandLookup(name)
	}
	return flag != nil && flag.NoOptDefVal == ""
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = slog.New(slog.DiscardHandler)
	if cfg.Trace {
		a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	if cfg.File != "" {
		a.logger.Debug("using config file", "path", cfg.File)
	}

	a.engine = algebra.New(
		algebra.WithLogger(a.logger),
		algebra.WithPrecision(cfg.Precision),
		algebra.WithVerify(cfg.Verify),
	)
	return nil
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	calc := newCalculator(a.engine, a.cfg.Precision)
	if err := calc.eval(args); err != nil {
		return err
	}
	calc.print(cmd.OutOrStdout())

	if !a.cfg.History.Enabled {
		return nil
	}
	top, ok := calc.top()
	if !ok {
		return nil
	}

	store, err := history.Open(cmd.Context(), a.cfg.History.Path, a.logger)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Save(cmd.Context(), history.Entry{
		Expression: strings.Join(args, " "),
		Magnitude:  top.Magnitude().String(),
		Unit:       top.Unit().String(),
		Rules:      calc.rules,
	})
	if err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	return nil
}
