package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .firefighter.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to firefighter! Let's configure the service.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Listen port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port selection: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 2. Database location.
	dbPrompt := promptui.Prompt{
		Label:   "SQLite database path",
		Default: cfg.DatabasePath,
	}
	if cfg.DatabasePath, err = dbPrompt.Run(); err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}

	// 3. Response style.
	stylePrompt := promptui.Select{
		Label: "Response style",
		Items: []string{
			"professional - trimmed, neutral tone (default)",
			"concise      - first lines only, hard length cap",
			"casual       - friendly, adds a lead-in emoji",
			"technical    - raw pipeline output, no trimming",
		},
	}
	styleIdx, _, err := stylePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("style selection: %w", err)
	}
	styles := []Style{StyleProfessional, StyleConcise, StyleCasual, StyleTechnical}
	cfg.ResponseStyle = styles[styleIdx]

	// 4. Emoji decoration.
	emojiPrompt := promptui.Select{
		Label: "Prefix responses with intent emojis",
		Items: []string{"no", "yes"},
	}
	emojiIdx, _, err := emojiPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("emoji selection: %w", err)
	}
	cfg.EmojiEnabled = emojiIdx == 1

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(DefaultPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultPath)
	return cfg, nil
}
