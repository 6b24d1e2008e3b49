package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stickpad/stickpad/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or change settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show one setting, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			fmt.Printf("theme:          %s\n", cfg.Theme)
			fmt.Printf("language:       %s\n", cfg.Language)
			fmt.Printf("retention_days: %d\n", cfg.RetentionDays)
			fmt.Printf("auto_clean:     %t\n", cfg.AutoClean)
			fmt.Printf("confirm_delete: %t\n", cfg.ConfirmDelete)
			fmt.Printf("log_level:      %s\n", cfg.LogLevel)
			return nil
		}
		value, err := configValue(cfg, args[0])
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a setting and save it to ~/.stickpad/config.yaml.

Keys: theme (system|light|dark), language (en|zh), retention_days,
auto_clean, confirm_delete, log_level.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := setConfigValue(cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("✓ %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

func configValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "theme":
		return cfg.Theme, nil
	case "language":
		return cfg.Language, nil
	case "retention_days":
		return strconv.Itoa(cfg.RetentionDays), nil
	case "auto_clean":
		return strconv.FormatBool(cfg.AutoClean), nil
	case "confirm_delete":
		return strconv.FormatBool(cfg.ConfirmDelete), nil
	case "log_level":
		return cfg.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "theme":
		if value != config.ThemeSystem && value != config.ThemeLight && value != config.ThemeDark {
			return fmt.Errorf("invalid theme: %s (expected system, light or dark)", value)
		}
		cfg.Theme = value
	case "language":
		if value != config.LangEnglish && value != config.LangChinese {
			return fmt.Errorf("invalid language: %s (expected en or zh)", value)
		}
		cfg.Language = value
	case "retention_days":
		days, err := strconv.Atoi(value)
		if err != nil || days < 1 {
			return fmt.Errorf("retention_days must be a positive integer")
		}
		cfg.RetentionDays = days
	case "auto_clean":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("auto_clean must be true or false")
		}
		cfg.AutoClean = b
	case "confirm_delete":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("confirm_delete must be true or false")
		}
		cfg.ConfirmDelete = b
	case "log_level":
		cfg.LogLevel = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
