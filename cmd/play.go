package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/daylingo/internal/app"
	"github.com/abhisek/daylingo/internal/config"
	"github.com/abhisek/daylingo/internal/content"
	"github.com/abhisek/daylingo/internal/llm"
	"github.com/abhisek/daylingo/internal/player"
	"github.com/abhisek/daylingo/internal/speech"
	"github.com/abhisek/daylingo/internal/store"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start learning (same as running daylingo with no arguments)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Jump straight into a practice session (never costs a heart)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, true)
	},
}

// runApp wires the store, ledger and AI services and starts the TUI.
func runApp(cmd *cobra.Command, startPractice bool) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	profiles := st.ProfileRepo()
	state, err := profiles.LoadOrDefault(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if cfg.SourceLanguage != "" {
		state.SourceTrack = cfg.SourceLanguage
	}
	ledger := player.NewLedger(state, profiles)

	onboarded, err := profiles.HasOnboarded(ctx)
	if err != nil {
		return fmt.Errorf("load onboarding flag: %w", err)
	}

	deps := app.Deps{
		Ledger:        ledger,
		Profile:       profiles,
		EventRepo:     st.EventRepo(),
		Onboarded:     onboarded,
		StartPractice: startPractice && onboarded,
	}

	// Lesson generation needs a text provider; the app still starts
	// without one, but sessions show a retryable error until a provider
	// is configured.
	llmCfg, found := resolveLLMConfig()
	if !found {
		fmt.Fprintln(os.Stderr, "No LLM provider configured; lessons will be unavailable.")
		fmt.Fprintln(os.Stderr, "Set GEMINI_API_KEY, or DAYLINGO_LLM_PROVIDER=mock for a stock demo lesson.")
	} else {
		provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo())
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Lessons will be unavailable.")
		} else {
			deps.Generator = content.NewService(provider)
		}
	}

	// Speech rides on Gemini regardless of the text provider choice.
	if cfg.Speech {
		if key := geminiKey(); key != "" {
			voice, err := speech.NewClient(ctx, key)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Speech unavailable:", err)
			} else {
				deps.Voice = voice
			}
		}
	}

	return app.Run(deps)
}

// resolveLLMConfig prefers explicit DAYLINGO_* settings, then falls
// back to probing the standard provider key variables.
func resolveLLMConfig() (llm.Config, bool) {
	if os.Getenv("DAYLINGO_LLM_PROVIDER") != "" {
		cfg := llm.ConfigFromEnv()
		return cfg, true
	}
	return llm.DiscoverConfig()
}

// geminiKey returns the Gemini API key for the speech features.
func geminiKey() string {
	if k := os.Getenv("DAYLINGO_GEMINI_API_KEY"); k != "" {
		return k
	}
	return os.Getenv("GEMINI_API_KEY")
}
