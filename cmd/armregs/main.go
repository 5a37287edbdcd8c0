package main

import (
	"os"

	"github.com/spf13/cobra"

	// Register maps are recorded by driver package init functions.
	_ "github.com/zmij/armpp/hal/nvic"
	_ "github.com/zmij/armpp/hal/scb"
	_ "github.com/zmij/armpp/hal/systick"
	_ "github.com/zmij/armpp/hal/timer"
	_ "github.com/zmij/armpp/hal/uart"
)

var rootCmd = &cobra.Command{
	Use:   "armregs",
	Short: "Inspect and verify the compiled peripheral register maps",
	Long: "armregs prints the register maps compiled into the drivers and\n" +
		"cross checks them against the vendor documented address map.",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
