package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexwhite-1/MDE4806-S26-14/pkg/sim"
)

type RunCommand struct {
	Profile  string  `long:"profile" description:"Replay a YAML trajectory profile"`
	Config   string  `long:"config" description:"JSON config file (quadsim.json is picked up automatically)"`
	CPR      int     `long:"cpr" default:"4096" description:"Resolution in cycles per revolution (1-9000)"`
	Axes     int     `long:"axes" default:"2" description:"Number of axes (1 or 2)"`
	Hz       int     `long:"hz" default:"20" description:"Sample rate"`
	Rate1    float64 `long:"rate1" default:"1.0" description:"Axis 1 rotation rate (deg/sec)"`
	Offset1  float64 `long:"offset1" default:"0" description:"Axis 1 starting angle (deg)"`
	Rate2    float64 `long:"rate2" default:"10.0" description:"Axis 2 rotation rate (deg/sec)"`
	Offset2  float64 `long:"offset2" default:"90" description:"Axis 2 starting angle (deg)"`
	Quantize bool    `long:"quantize" description:"Snap angles to the encoder's minimum step"`
	Angles   bool    `long:"angles" description:"Append the driving angles to each CSV line"`
	Count    int     `long:"count" short:"n" description:"Samples to emit (0 = run until interrupted)"`
}

// loadSimConfig resolves the simulation config: an explicit profile wins,
// then an explicit or discovered config file, then the flag values.
func loadSimConfig(profile, configPath string, flagCfg sim.Config) (sim.Config, error) {
	if profile != "" {
		p, err := sim.LoadProfile(profile)
		if err != nil {
			return sim.Config{}, err
		}
		return p.ToConfig()
	}

	if configPath == "" && sim.ConfigExists() {
		configPath = sim.DefaultConfigFile
	}
	if configPath != "" {
		fc, err := sim.LoadConfigFrom(configPath)
		if err != nil {
			return sim.Config{}, fmt.Errorf("load config %s: %w", configPath, err)
		}
		return fc.ToConfig(), nil
	}

	return flagCfg, nil
}

func (c *RunCommand) flagConfig() sim.Config {
	return sim.Config{
		CPR:      c.CPR,
		Axes:     c.Axes,
		Hz:       c.Hz,
		Axis1:    sim.ConstantRate{Rate: c.Rate1, Offset: c.Offset1},
		Axis2:    sim.ConstantRate{Rate: c.Rate2, Offset: c.Offset2},
		Quantize: c.Quantize,
	}
}

func (c *RunCommand) Execute(args []string) error {
	cfg, err := loadSimConfig(c.Profile, c.Config, c.flagConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Finite run: deterministic, no ticker, suitable for piping into files
	// and diffing against reference traces.
	if c.Count > 0 {
		for _, s := range sim.Generate(cfg, c.Count) {
			fmt.Println(s.CSV(c.Angles))
		}
		return nil
	}

	runner := sim.NewRunner(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := runner.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Runner error: %v", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-runner.Samples():
			fmt.Println(s.CSV(c.Angles))
		}
	}
}
