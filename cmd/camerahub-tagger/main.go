// Command camerahub-tagger reconciles the embedded metadata of scanned
// photographs with their CameraHub scan records.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/camerahub/tagger/internal/catalog"
	"github.com/camerahub/tagger/internal/config"
	"github.com/camerahub/tagger/internal/exif"
	"github.com/camerahub/tagger/internal/logging"
	"github.com/camerahub/tagger/internal/prompt"
	"github.com/camerahub/tagger/internal/recon"
)

var (
	flagRecursive bool
	flagAuto      bool
	flagYes       bool
	flagDryRun    bool
	flagFile      string
	flagProfile   string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "camerahub-tagger",
	Short: "Tag scanned photographs from CameraHub records",
	Long: `camerahub-tagger matches scanned photographs to CameraHub scan
records and writes the catalog metadata into each file's embedded tags.
Files are processed one at a time; a failure on one file never stops the
rest of the batch.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().BoolVarP(&flagRecursive, "recursive", "r", false, "search for scans recursively")
	rootCmd.Flags().BoolVarP(&flagAuto, "auto", "a", false, "don't prompt to identify scans, only guess from filenames")
	rootCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "accept all changes")
	rootCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "d", false, "don't write any tags")
	rootCmd.Flags().StringVarP(&flagFile, "file", "f", "", "image file to be tagged")
	rootCmd.Flags().StringVarP(&flagProfile, "profile", "p", "prod", "CameraHub connection profile")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	log := logging.New(os.Stderr, level)

	configPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	profile, err := config.Load(configPath, flagProfile, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	// Without exiftool the codec cannot run at all.
	if _, err := exec.LookPath("exiftool"); err != nil {
		return fmt.Errorf("exiftool not found in PATH: %w", err)
	}

	client := catalog.New(profile.Server, profile.Username, profile.Password, log)
	ctx := cmd.Context()
	if err := client.TestCredentials(ctx); err != nil {
		return err
	}
	log.Info("credentials ok", "server", profile.Server)

	codec, err := exif.NewCodec()
	if err != nil {
		return err
	}
	defer codec.Close()

	files, err := findFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No files found")
		return nil
	}

	driver := recon.NewDriver(client, codec, prompt.NewConsole(), recon.Options{
		Auto:      flagAuto,
		AssumeYes: flagYes,
		DryRun:    flagDryRun,
	}, log, os.Stdout)

	counts := map[recon.Outcome]int{}
	for _, file := range files {
		fmt.Printf("Processing image %s\n", file)
		outcome, err := driver.Process(ctx, file)
		if err != nil {
			log.Warn("file not reconciled", "file", file, "outcome", string(outcome), "error", err)
		}
		counts[outcome]++
		if ctx.Err() != nil {
			break
		}
	}

	fmt.Printf("Done: %d written, %d unchanged, %d declined, %d skipped, %d failed\n",
		counts[recon.OutcomeWritten], counts[recon.OutcomeUnchanged], counts[recon.OutcomeDeclined],
		counts[recon.OutcomeSkipped]+counts[recon.OutcomeFetchFailed], counts[recon.OutcomeFailed])
	return nil
}

// findFiles selects the batch: a single file when --file is set, otherwise
// the JPEGs of the working directory, walked recursively with --recursive.
func findFiles() ([]string, error) {
	if flagFile != "" {
		return []string{flagFile}, nil
	}

	if flagRecursive {
		var files []string
		err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", path, err)
				return nil
			}
			if !info.IsDir() && isJPEG(path) {
				files = append(files, path)
			}
			return nil
		})
		return files, err
	}

	entries, err := os.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && isJPEG(e.Name()) {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

func isJPEG(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return true
	}
	return false
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
