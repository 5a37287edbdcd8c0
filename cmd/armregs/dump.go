package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zmij/armpp/hal"
)

var (
	dumpOpts = struct {
		peripheral string
	}{}

	dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Print the compiled register maps",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			printed := 0
			for _, l := range hal.Layouts() {
				if dumpOpts.peripheral != "" && !strings.EqualFold(l.Peripheral, dumpOpts.peripheral) {
					continue
				}
				printed++
				fmt.Fprintf(out, "%s @ %#010x, %#x bytes\n", l.Peripheral, uint32(l.Base), l.Size)
				for _, e := range l.Entries {
					bits := e.Bits
					if bits == 0 {
						bits = hal.RegisterBits
					}
					fmt.Fprintf(out, "  %-10s +%#04x  %#010x  %4d bits\n",
						e.Name, e.Offset, uint32(e.Documented), bits)
				}
			}
			if printed == 0 && dumpOpts.peripheral != "" {
				return fmt.Errorf("no compiled register map named %q", dumpOpts.peripheral)
			}
			return nil
		},
	}
)

func init() {
	dumpCmd.Flags().StringVarP(&dumpOpts.peripheral, "peripheral", "p", "", "limit output to one peripheral")
	rootCmd.AddCommand(dumpCmd)
}
