package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fenilsonani/dupefinder/internal/config"
	"github.com/fenilsonani/dupefinder/internal/detector"
	"github.com/fenilsonani/dupefinder/internal/fileops"
	"github.com/fenilsonani/dupefinder/internal/platform"
	"github.com/fenilsonani/dupefinder/internal/reporter"
	"github.com/fenilsonani/dupefinder/internal/ui"
	"github.com/fenilsonani/dupefinder/internal/ui/models"
	"github.com/fenilsonani/dupefinder/pkg/utils"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath  string
	algorithm   string
	workers     int
	minSize     string
	excludes    []string
	outputFmt   string
	interactive bool
	quiet       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dupefinder",
	Short: "Find duplicate files",
	Long: `Dupefinder scans a directory tree for files with byte-identical content.
Candidates are grouped by exact size first, so only files that could
possibly be duplicates ever get hashed.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
}

var scanCmd = &cobra.Command{
	Use:   "scan [directory]",
	Short: "Scan a directory tree for duplicate files",
	Long: `Scans the given directory (default: current directory) and reports
groups of files with identical content. With --interactive, review the
groups and move selected copies to the system trash.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		root := "."
		if len(args) > 0 {
			root = args[0]
		}

		det := detector.New(cfg)

		if interactive {
			return runInteractive(root, det)
		}
		return runPlain(root, det, cfg)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.EnsureConfigExists()
		if err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
		fmt.Printf("Config file: %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		fmt.Printf("Hash algorithm:  %s\n", cfg.Hash.Algorithm)
		fmt.Printf("Hash workers:    %d\n", cfg.Hash.Workers)
		fmt.Printf("Min file size:   %s\n", utils.FormatBytes(cfg.Scan.MinFileSize))
		fmt.Printf("Exclude:         %v\n", cfg.Scan.ExcludePatterns)
		fmt.Printf("Output format:   %s\n", cfg.Output.Format)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")

	scanCmd.Flags().StringVar(&algorithm, "algorithm", "", "content digest algorithm (blake3, sha256)")
	scanCmd.Flags().IntVar(&workers, "workers", 0, "hashing worker count (1 = sequential)")
	scanCmd.Flags().StringVar(&minSize, "min-size", "", "skip files smaller than this (e.g. 1KB)")
	scanCmd.Flags().StringArrayVar(&excludes, "exclude", nil, "glob patterns to exclude")
	scanCmd.Flags().StringVarP(&outputFmt, "output", "o", "", "output format (summary, table, json, yaml)")
	scanCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "review groups in an interactive TUI")
	scanCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the config file and applies flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if algorithm != "" {
		cfg.Hash.Algorithm = algorithm
	}
	if workers > 0 {
		cfg.Hash.Workers = workers
	}
	if minSize != "" {
		bytes, err := utils.ParseSize(minSize)
		if err != nil {
			return nil, fmt.Errorf("invalid --min-size: %w", err)
		}
		cfg.Scan.MinFileSize = bytes
	}
	if len(excludes) > 0 {
		cfg.Scan.ExcludePatterns = append(cfg.Scan.ExcludePatterns, excludes...)
	}
	if outputFmt != "" {
		cfg.Output.Format = outputFmt
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// runPlain scans with a single-line progress display and prints a report
func runPlain(root string, det *detector.Detector, cfg *config.Config) error {
	lp := ui.NewLiveProgress()
	if quiet {
		lp.SetEnabled(false)
	}

	updates := det.GetProgressReporter().Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range updates {
			lp.Update(update)
		}
	}()

	// Ctrl-C requests a cooperative stop rather than killing the scan
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		<-sigs
		det.Stop()
	}()

	result, err := det.Scan(context.Background(), root)

	det.GetProgressReporter().Unsubscribe(updates)
	<-done
	lp.Finish()

	if err != nil {
		return err
	}

	if result.Stopped() {
		fmt.Println("Scan stopped.")
		return nil
	}

	rptr := reporter.New(os.Stdout, reporter.OutputFormat(cfg.Output.Format))
	return rptr.Report(result)
}

// runInteractive scans and reviews duplicate groups in the TUI
func runInteractive(root string, det *detector.Detector) error {
	platformInfo, err := platform.GetInfo()
	if err != nil {
		return fmt.Errorf("failed to get platform info: %w", err)
	}

	trasher := fileops.New(platformInfo)
	app := models.NewAppModel(root, det, trasher)

	program := tea.NewProgram(app, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}

	if m, ok := finalModel.(*models.AppModel); ok {
		if m.Err() != nil {
			return m.Err()
		}
		if result := m.Result(); result != nil {
			if result.Stopped() {
				fmt.Println("Scan stopped.")
			} else if result.GroupCount() == 0 {
				fmt.Println("No duplicates found.")
			}
		}
	}

	return nil
}
