package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Setup   SetupCommand   `command:"setup" description:"Create a quadsim.json configuration interactively"`
	Run     RunCommand     `command:"run" description:"Stream simulated quadrature output as CSV"`
	Display DisplayCommand `command:"display" alias:"disp" description:"Show the quadrature signals as live waveforms"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "quadsim - simulated quadrature encoder output for the S26-14 inclinometer"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
