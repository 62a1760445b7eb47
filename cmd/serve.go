package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/prepquiz/internal/api"
	"github.com/abhisek/prepquiz/internal/llm"
	"github.com/abhisek/prepquiz/internal/quiz"
	"github.com/abhisek/prepquiz/internal/quizgen"
	"github.com/abhisek/prepquiz/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the quiz HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides PREPQUIZ_ADDR, default :8080)")
}

// runServe opens the store, builds the engine, and serves HTTP until
// interrupted.
func runServe(cmd *cobra.Command) error {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()

	genCfg := quizgen.DefaultConfig()
	var generator quizgen.Generator
	if provider, err := llm.NewProviderFromEnv(ctx, eventRepo); err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Serving the built-in question bank instead.")
		generator = quizgen.NewFallbackGenerator()
	} else {
		generator = quizgen.NewClient(provider, genCfg)
	}

	registry := quiz.NewRegistry(quiz.DefaultSessionTTL)
	registry.StartJanitor(ctx, 5*time.Minute)

	engine := quiz.NewEngine(generator, genCfg.Validators, registry, eventRepo, quiz.DefaultConfig())

	addr := listenAddr(cmd)
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

func listenAddr(cmd *cobra.Command) string {
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		return addr
	}
	if addr := os.Getenv("PREPQUIZ_ADDR"); addr != "" {
		return addr
	}
	return ":8080"
}
