package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/okrylov/praktik/internal/config"
	"github.com/okrylov/praktik/internal/curriculum"
	"github.com/okrylov/praktik/internal/engine"
	"github.com/okrylov/praktik/internal/evaluate"
	"github.com/okrylov/praktik/internal/llm"
	"github.com/okrylov/praktik/internal/server"
	"github.com/okrylov/praktik/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config file)")
	serveCmd.Flags().String("curriculum", "", "Curriculum directory (overrides config file)")
	serveCmd.Flags().String("config", "", "Path to TOML config file")
}

func runServe(cmd *cobra.Command) error {
	// Best effort; the app runs fine without a .env file.
	_ = godotenv.Load()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}
	settings, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		settings.Addr = addr
	}
	if dir, _ := cmd.Flags().GetString("curriculum"); dir != "" {
		settings.CurriculumDir = dir
	}

	ix, err := curriculum.Load(settings.CurriculumDir)
	if err != nil {
		return fmt.Errorf("load curriculum: %w", err)
	}
	log.Info("curriculum loaded",
		"categories", len(ix.Categories()),
		"skills", len(ix.SkillNames()),
	)

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w", err)
	}

	eval := evaluate.New(provider, evaluate.Config{
		MaxTokens:   settings.EvalMaxTokens,
		Temperature: settings.EvalTemp,
		Timeout:     settings.EvalTimeout,
	})

	eng := engine.New(ix, st.ProgressRepo(), eval)
	srv := server.New(eng, log)

	if err := srv.ListenAndServe(ctx, settings.Addr); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	log.Info("shut down cleanly")
	return nil
}
