// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mikecarlton/dimcalc/internal/enumerable"
	"github.com/mikecarlton/dimcalc/pkg/algebra"
)

func newRulesCmd(a *app) *cobra.Command {
	var (
		op        string
		qualified bool
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the simplification rules in the order they are tried",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := a.engine.Rules()
			if op != "" {
				rules = enumerable.Filter(rules, func(r algebra.Rule) bool {
					return strings.EqualFold(r.Op.String(), op)
				})
				if len(rules) == 0 {
					return fmt.Errorf("unknown operation %q, expected times or div", op)
				}
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			if qualified {
				t.AppendHeader(table.Row{"#", "Rule", "Specializations"})
			} else {
				t.AppendHeader(table.Row{"#", "Rule", "Result"})
			}

			for i, r := range rules {
				if qualified {
					t.AppendRow(table.Row{i + 1, r.Name(), strings.Join(r.Specializations(), "\n")})
				} else {
					t.AppendRow(table.Row{i + 1, r.Name(), r.Result})
				}
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&op, "op", "", "only rules for this operation (times or div)")
	cmd.Flags().BoolVar(&qualified, "qualified", false, "show the name of each rule in all seven capabilities")
	return cmd
}
