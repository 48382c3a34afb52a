package main

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/nf/intcode/intcode"
)

func newDisCmd() *cobra.Command {
	var (
		symFile string
		from    int64
	)
	c := &cobra.Command{
		Use:   "dis [--sym FILE] PROGRAM",
		Short: "Disassemble an Intcode program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := intcode.ReadFile(args[0])
			if err != nil {
				return err
			}
			syms, err := loadSymbols(symFile, args[0])
			if err != nil {
				return err
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			if err := intcode.Disassemble(w, prog, from, syms); err != nil {
				return err
			}
			return w.Flush()
		},
	}
	c.Flags().StringVar(&symFile, "sym", "", "YAML symbol table `file` (default PROGRAM.sym.yaml)")
	c.Flags().Int64Var(&from, "from", 0, "start disassembling at `ADDR`")
	return c
}
