package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/ekisa-team/ckmirror/internal/checkpoint"
	"github.com/ekisa-team/ckmirror/internal/config"
	"github.com/ekisa-team/ckmirror/internal/env"
	"github.com/ekisa-team/ckmirror/internal/logger"
	"github.com/ekisa-team/ckmirror/internal/run"
	"github.com/ekisa-team/ckmirror/internal/storage"
	"github.com/ekisa-team/ckmirror/internal/xfs"
)

func main() {
	var (
		flagConfigPath = flag.String("config", path.Join(config.DefaultConfigPath(), "config.yaml"), "Path to config file")
		flagSchemaPath = flag.String("schema", path.Join(config.DefaultConfigPath(), "ckmirror.v1.schema.json"), "Path to schema file")
	)
	flag.Parse()

	environment := env.FromEnv()

	slog.SetDefault(
		logger.New(environment,
			logger.WithLogToFile(true),
			logger.WithLogFile("logs/ckmirror.log"),
		),
	)

	command := flag.Arg(0)
	if command == "" {
		fmt.Fprintln(os.Stderr, "usage: ckmirror [flags] publish [dir] | fetch | watch")
		os.Exit(2)
	}

	cfg, err := config.LoadAndValidate(*flagConfigPath, *flagSchemaPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("Config loaded successfully", "config", *flagConfigPath, "run", cfg.Run.Name)

	ctx := context.Background()

	backend, err := storage.Open(ctx, storage.Config{
		Kind:    storage.Kind(cfg.Storage.Backend),
		Bucket:  cfg.Storage.Bucket,
		Options: cfg.Storage.Options,
	})
	if err != nil {
		slog.Error("Failed to open storage backend", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	publisher := checkpoint.NewPublisher(backend, cfg.Run.Name)

	switch command {
	case "publish":
		dir := flag.Arg(1)
		if dir == "" {
			dir, err = newestLocalCheckpoint(xfs.ExpandTilde(cfg.Run.LocalDir))
			if err != nil {
				slog.Error("Failed to locate local checkpoint", "error", err)
				os.Exit(1)
			}
		}

		files, err := publisher.Publish(ctx, dir)
		if err != nil {
			slog.Error("Failed to publish checkpoint", "dir", dir, "error", err)
			os.Exit(1)
		}

		slog.Info("Publish complete", "dir", dir, "files", files)

	case "fetch":
		destDir := cfg.Fetch.DestDir
		if destDir == "" {
			destDir = config.DefaultDataPath()
		}

		localDir, err := checkpoint.NewLocator(backend).FetchLatest(ctx, xfs.ExpandTilde(destDir))
		if err != nil {
			slog.Error("Failed to fetch latest checkpoint", "error", err)
			os.Exit(1)
		}

		// The training script reads the resume path from stdout.
		fmt.Println(localDir)

	case "watch":
		if cfg.Run.LocalDir == "" {
			slog.Error("watch requires run.local_dir in the config")
			os.Exit(1)
		}

		_, err := checkpoint.NewWatcher(ctx, xfs.ExpandTilde(cfg.Run.LocalDir), backend, publisher, run.NewRegistry())
		if err != nil {
			slog.Error("Failed to start checkpoint watcher", "error", err)
			os.Exit(1)
		}

		select {}

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		os.Exit(2)
	}
}

// newestLocalCheckpoint returns the highest-step checkpoint directory under runDir.
func newestLocalCheckpoint(runDir string) (string, error) {
	if runDir == "" {
		return "", fmt.Errorf("run.local_dir is not configured and no directory was given")
	}

	entries, err := os.ReadDir(runDir)
	if err != nil {
		return "", fmt.Errorf("failed to read run directory %s: %w", runDir, err)
	}

	best, bestName := -1, ""
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if step, ok := checkpoint.ParseStep(entry.Name()); ok && step > best {
			best, bestName = step, entry.Name()
		}
	}

	if bestName == "" {
		return "", fmt.Errorf("no checkpoint directories under %s", runDir)
	}

	return filepath.Join(runDir, bestName), nil
}
