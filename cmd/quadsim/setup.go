package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexwhite-1/MDE4806-S26-14/pkg/quadrature"
	"github.com/alexwhite-1/MDE4806-S26-14/pkg/sim"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type SetupCommand struct{}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("Quadsim Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━"))
	fmt.Println()

	cfg := sim.DefaultFileConfig()
	if sim.ConfigExists() {
		if existing, err := sim.LoadConfig(); err == nil {
			cfg = *existing
			fmt.Printf("Editing existing %s\n\n", sim.DefaultConfigFile)
		}
	}

	cprStr := strconv.Itoa(cfg.CPR)
	hzStr := strconv.Itoa(cfg.Hz)
	rate1Str := formatFloat(cfg.Axis1.Rate)
	offset1Str := formatFloat(cfg.Axis1.Offset)
	rate2Str := formatFloat(cfg.Axis2.Rate)
	offset2Str := formatFloat(cfg.Axis2.Offset)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Number of axes").
				Options(
					huh.NewOption("1 (single axis)", 1),
					huh.NewOption("2 (dual axis)", 2),
				).
				Value(&cfg.Axes),
			huh.NewInput().
				Title(fmt.Sprintf("Resolution in CPR (%d-%d)", quadrature.MinCPR, quadrature.MaxCPR)).
				Value(&cprStr).
				Validate(validateInt(quadrature.MinCPR, quadrature.MaxCPR)),
			huh.NewInput().
				Title("Sample rate (Hz)").
				Value(&hzStr).
				Validate(validateInt(1, 1000)),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Axis 1 rotation rate (deg/sec)").
				Value(&rate1Str).
				Validate(validateFloat),
			huh.NewInput().
				Title("Axis 1 starting angle (deg)").
				Value(&offset1Str).
				Validate(validateFloat),
			huh.NewInput().
				Title("Axis 2 rotation rate (deg/sec)").
				Value(&rate2Str).
				Validate(validateFloat),
			huh.NewInput().
				Title("Axis 2 starting angle (deg)").
				Value(&offset2Str).
				Validate(validateFloat),
			huh.NewConfirm().
				Title("Quantize angles to the encoder resolution?").
				Value(&cfg.Quantize),
		),
	)

	if err := form.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Setup aborted: %v\n", err)
		os.Exit(1)
	}

	// Validators guarantee these parse.
	cfg.CPR, _ = strconv.Atoi(cprStr)
	cfg.Hz, _ = strconv.Atoi(hzStr)
	cfg.Axis1.Rate, _ = strconv.ParseFloat(rate1Str, 64)
	cfg.Axis1.Offset, _ = strconv.ParseFloat(offset1Str, 64)
	cfg.Axis2.Rate, _ = strconv.ParseFloat(rate2Str, 64)
	cfg.Axis2.Offset, _ = strconv.ParseFloat(offset2Str, 64)

	if err := cfg.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", sim.DefaultConfigFile)
	fmt.Println()
	fmt.Println("Stream samples with: " + headerStyle.Render("quadsim run"))
	fmt.Println("Watch waveforms with: " + headerStyle.Render("quadsim display"))

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func validateInt(min, max int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if v < min || v > max {
			return fmt.Errorf("must be between %d and %d", min, max)
		}
		return nil
	}
}

func validateFloat(s string) error {
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}
