package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/daylingo/internal/llm"
	"github.com/abhisek/daylingo/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Show LLM usage totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		totals, err := s.EventRepo().LLMTotals(context.Background())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		if totals.Requests == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Printf("Requests:      %d\n", totals.Requests)
		fmt.Printf("Failures:      %d\n", totals.Failures)
		fmt.Printf("Input tokens:  %d\n", totals.InputTokens)
		fmt.Printf("Output tokens: %d\n", totals.OutputTokens)
		fmt.Printf("Total tokens:  %d\n", totals.InputTokens+totals.OutputTokens)

		usage, err := s.LLMUsageByModel(context.Background())
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(usage) > 0 {
			fmt.Println()
			fmt.Println("Estimated Cost (USD)")
			fmt.Println(strings.Repeat("─", 72))
			fmt.Printf("%-32s  %6s  %10s  %10s  %9s\n",
				"Model", "Calls", "Input", "Output", "Cost")

			var totalCost float64
			var unknown []string
			for _, mu := range usage {
				cost := llm.LookupCost(mu.Model)
				if cost == nil {
					unknown = append(unknown, mu.Model)
					fmt.Printf("%-32s  %6d  %10d  %10d  %9s\n",
						truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, "?")
					continue
				}
				c := cost.Cost(mu.InputTokens, mu.OutputTokens)
				totalCost += c
				fmt.Printf("%-32s  %6d  %10d  %10d  %9s\n",
					truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, formatCost(c))
			}

			fmt.Println(strings.Repeat("─", 72))
			label := "TOTAL"
			if len(unknown) > 0 {
				label = "TOTAL (partial)"
			}
			fmt.Printf("%-32s  %6s  %10s  %10s  %9s\n", label, "", "", "", formatCost(totalCost))
			if len(unknown) > 0 {
				fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
			}
		}
		return nil
	},
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the configured LLM provider with a ping request",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, found := resolveLLMConfig()
		if !found {
			return fmt.Errorf("no LLM provider configured: set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or DAYLINGO_LLM_PROVIDER")
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		ctx = llm.WithPurpose(ctx, "check")

		provider, err := llm.NewProvider(ctx, cfg, s.EventRepo())
		if err != nil {
			return fmt.Errorf("initialize provider: %w", err)
		}

		fmt.Printf("Provider: %s\n", cfg.Provider)
		fmt.Printf("Model:    %s\n", provider.ModelID())

		start := time.Now()
		resp, err := provider.Generate(ctx, llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Reply with the single word OK."}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("ping failed: %w", err)
		}

		fmt.Printf("Latency:  %s\n", time.Since(start).Round(time.Millisecond))
		fmt.Printf("Tokens:   %d in / %d out\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
		fmt.Println("OK")
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmCheckCmd)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
