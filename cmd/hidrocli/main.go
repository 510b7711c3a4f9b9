package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"Hidro/internal/config"
	"Hidro/internal/history"
	"Hidro/internal/logger"
	"Hidro/internal/repo"
)

const banner = `Calculadora de mecânica dos fluidos
Type 'help' for commands, 'exit' or Ctrl+D to quit`

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "read .env:", err)
	}
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New("production")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	blobs, closeStore, err := repo.Open(ctx, cfg.StoreDriver, cfg.SQLitePath, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open history store:", err)
		os.Exit(1)
	}
	defer closeStore()

	store := history.NewStore(blobs, history.WithLogger(log))
	store.Load(ctx)

	run(newSession(ctx, os.Stdout, store))
}

func run(s *session) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(s.complete)

	historyFile := filepath.Join(os.TempDir(), ".hidrocli_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintln(s.out, banner)
	for {
		input, err := line.Prompt(s.prompt())
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Fprintln(s.out, "^C")
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(s.out)
				return
			}
			fmt.Fprintf(s.out, "Error reading input: %v\n", err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if err := s.exec(input); err != nil {
			if errors.Is(err, errQuit) {
				return
			}
			fmt.Fprintln(s.out, "erro:", err)
		}
	}
}
