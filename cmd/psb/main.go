package main

import (
	"fmt"
	"os"

	"psb-go/internal/app"
	"psb-go/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readConfig loads the config from the default (or overridden) location.
func readConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return cfg, nil
}

var rootCmd = &cobra.Command{
	Use:   "psb",
	Short: "Shared photo-stream backup tool",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["cache_root"], defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Cache Root: %s\n", cfg.CacheRoot)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Cache Root:  %s\n", cfg.CacheRoot)
		fmt.Printf("Log Dir:     %s\n", cfg.LogDir)
		fmt.Printf("Destination: %s\n", cfg.Destination)
		fmt.Printf("Alternate:   %s\n", cfg.Alternate)
		return nil
	},
}

// albums command
var albumsCmd = &cobra.Command{
	Use:   "albums",
	Short: "List shared albums in the cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}

		a, err := app.NewPSBApp(cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		names, err := a.ListAlbums()
		if err != nil {
			return err
		}

		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

// backup command
var backupCmd = &cobra.Command{
	Use:   "backup [ALBUM...]",
	Short: "Back up shared albums to a destination folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, _ := cmd.Flags().GetString("dest")
		altDest, _ := cmd.Flags().GetString("alt-dest")
		all, _ := cmd.Flags().GetBool("all")
		verbose, _ := cmd.Flags().GetBool("verbose")

		cfg, err := readConfig()
		if err != nil {
			return err
		}

		// Flags override config defaults. The destination must come from
		// one of them before any work begins.
		if dest == "" {
			dest = cfg.Destination
		}
		if altDest == "" {
			altDest = cfg.Alternate
		}
		if dest == "" {
			return fmt.Errorf("no destination: pass --dest or set destination in config")
		}
		if len(args) == 0 && !all {
			return fmt.Errorf("no albums selected: pass album names or --all")
		}

		a, err := app.NewPSBApp(cfg, verbose)
		if err != nil {
			return err
		}
		defer a.Close()

		summary, err := a.Backup(args, all, dest, altDest)
		if err != nil {
			return err
		}

		for _, s := range summary.Albums {
			fmt.Printf("[%-8s] %s: %d assets, %d files, %d copied, %d skipped, %d missing, %d failed\n",
				s.Level, s.Album, s.AssetsFound, s.Processed, s.Copied,
				s.SkippedExact+s.SkippedFuzzy, s.MissingAssets, s.CopyFailures)
		}
		for _, name := range summary.AlbumsNotFound {
			fmt.Printf("[%-8s] %s: not found in catalog\n", "error", name)
		}
		fmt.Printf("Done in %s\n", summary.Elapsed)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	backupCmd.Flags().StringP("dest", "d", "", "Primary destination root")
	backupCmd.Flags().String("alt-dest", "", "Optional secondary archive root")
	backupCmd.Flags().Bool("all", false, "Back up every album in the cache")
	backupCmd.Flags().BoolP("verbose", "v", false, "Log every per-file decision")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(albumsCmd)
	rootCmd.AddCommand(backupCmd)
}
