// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mikecarlton/dimcalc/internal/enumerable"
	"github.com/mikecarlton/dimcalc/pkg/unit"
)

func newUnitsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "List the unit catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := a.cfg.Systems()
			units := enumerable.Filter(unit.Catalog(), func(d unit.Defined) bool {
				return !d.Systems().Intersect(filter).IsEmpty()
			})

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Quantity", "Symbol", "Name", "Systems", "SI Factor"})

			groups := enumerable.GroupBy(units, unit.Defined.Quantity)
			for i, group := range groups {
				if i > 0 {
					t.AppendSeparator()
				}
				t.AppendRows(enumerable.Map(group.Items, func(d unit.Defined) table.Row {
					return table.Row{group.Key, symbol(d), d.Description(), d.Systems(), d.Scale()}
				}))
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().String("system", "", "only units usable in these systems (e.g. metric, uk, us)")
	return cmd
}

func symbol(d unit.Defined) string {
	if d.Name() == "" {
		return "(none)"
	}
	return d.Name()
}
