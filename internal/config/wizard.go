package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to meshdocs! Let's configure your docs hub.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:    "Port for the web hub",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 2. Clipboard backend.
	backendPrompt := promptui.Select{
		Label: "Clipboard for the terminal hub",
		Items: []string{
			"system: xclip / wl-copy / pbcopy",
			"osc52: terminal escape sequence, works over SSH",
			"none: disable copying",
		},
	}
	backendIdx, _, err := backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("clipboard selection: %w", err)
	}
	cfg.Clipboard.Backend = []string{ClipboardSystem, ClipboardOSC52, ClipboardNone}[backendIdx]

	// 3. Hover weight.
	weightPrompt := promptui.Prompt{
		Label:    "Hovered tile weight (4-8)",
		Default:  strconv.FormatFloat(cfg.Grid.HoverWeight, 'f', -1, 64),
		Validate: validateWeight,
	}
	weightStr, err := weightPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("hover weight: %w", err)
	}
	cfg.Grid.HoverWeight, _ = strconv.ParseFloat(strings.TrimSpace(weightStr), 64)

	// 4. Dev controls.
	devPrompt := promptui.Prompt{
		Label:     "Enable live tile controls",
		IsConfirm: true,
	}
	if _, err := devPrompt.Run(); err == nil {
		cfg.Server.Dev = true
		cfg.Grid.CleanInterface = false
	} else if !errors.Is(err, promptui.ErrAbort) {
		return nil, fmt.Errorf("dev controls: %w", err)
	}

	// 5. Export directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for exported HTML",
		Default: cfg.Export.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.Export.OutputDir = strings.TrimSpace(outputDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("port must be a number")
	}
	if p < 1 || p > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}

func validateWeight(s string) error {
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("weight must be a number")
	}
	if w < 4 || w > 8 {
		return errors.New("weight must be between 4 and 8")
	}
	return nil
}
