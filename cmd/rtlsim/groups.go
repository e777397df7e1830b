// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/db47h/rtlsim"
	"github.com/spf13/cobra"
)

func newGroupsCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "Print the resolved connectivity groups of a circuit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			top, err := build(cfg)
			if err != nil {
				return err
			}
			c, err := rtlsim.NewCircuit(top, cfg.Options()...)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CELL\tWIDTH\tMODE\tMEMBERS")
			for _, g := range c.Groups() {
				fmt.Fprintf(w, "%d\t%d\t%v\t%s\n", g.Cell, g.Width, g.Mode, strings.Join(g.Members, " "))
			}
			return w.Flush()
		},
	}
}
