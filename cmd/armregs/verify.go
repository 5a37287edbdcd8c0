package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zmij/armpp/hal"
	"github.com/zmij/armpp/platform"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Cross check the compiled maps against the vendor address map",
	RunE: func(cmd *cobra.Command, args []string) error {
		var errs []error
		for _, l := range hal.Layouts() {
			if err := verifyLayout(l); err != nil {
				errs = append(errs, err)
			}
		}
		if err := errors.Join(errs...); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "all compiled register maps match the vendor address map")
		return nil
	},
}

func verifyLayout(l hal.Layout) error {
	p, err := platform.All().FindByName(l.Peripheral)
	if err != nil {
		return fmt.Errorf("%s: %w", l.Peripheral, err)
	}

	var errs []error
	if hal.Address(p.Base) != l.Base {
		errs = append(errs, fmt.Errorf("%s: compiled base %#x, documented %#x",
			l.Peripheral, uint32(l.Base), p.Base))
	}
	if uintptr(p.Size) != l.WantSize {
		errs = append(errs, fmt.Errorf("%s: compiled span %#x, documented %#x",
			l.Peripheral, l.WantSize, p.Size))
	}
	for _, e := range l.Entries {
		r, err := p.FindRegister(e.Name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", l.Peripheral, e.Name, err))
			continue
		}
		if hal.Address(r.Address) != e.Documented {
			errs = append(errs, fmt.Errorf("%s.%s: compiled address %#x, documented %#x",
				l.Peripheral, e.Name, uint32(e.Documented), r.Address))
		}
		if width(e.Bits) != width(r.Bits) {
			errs = append(errs, fmt.Errorf("%s.%s: compiled width %d bits, documented %d",
				l.Peripheral, e.Name, width(e.Bits), width(r.Bits)))
		}
	}
	return errors.Join(errs...)
}

func width(bits uint) uint {
	if bits == 0 {
		return hal.RegisterBits
	}
	return bits
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
