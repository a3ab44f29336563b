package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/daylingo/internal/player"
	"github.com/spf13/cobra"

	"github.com/abhisek/daylingo/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
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

		ctx := context.Background()
		state, err := s.ProfileRepo().LoadOrDefault(ctx)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}

		fmt.Printf("%s %s\n", state.Avatar.Display(), state.Name)
		fmt.Printf("Course:   %s (from %s)\n", state.CurrentTrack, state.SourceTrack)
		fmt.Printf("Streak:   %d days\n", state.Streak)
		fmt.Printf("Hearts:   %d / %d\n", state.Hearts, player.MaxHearts)
		fmt.Printf("Gems:     %d\n", state.Gems)
		fmt.Printf("League:   %s\n", state.League)
		fmt.Printf("Total XP: %d\n", state.TotalXP())

		if len(state.Progress) > 0 {
			fmt.Println()
			fmt.Println("Progress by course")
			fmt.Println(strings.Repeat("─", 48))
			codes := make([]string, 0, len(state.Progress))
			for code := range state.Progress {
				codes = append(codes, code)
			}
			sort.Strings(codes)
			for _, code := range codes {
				p := state.Progress[code]
				fmt.Printf("%-12s  unit %-3d  %3d lessons  %6d XP\n",
					code, p.CurrentUnit, len(p.CompletedLessonIDs), p.XP)
			}
		}

		sessions, err := s.EventRepo().RecentSessions(ctx, 10)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) > 0 {
			fmt.Println()
			fmt.Println("Recent sessions")
			fmt.Println(strings.Repeat("─", 64))
			fmt.Printf("%-16s  %-9s  %-10s  %5s  %5s  %6s\n",
				"When", "Kind", "Course", "Score", "Acc", "XP")
			for _, ev := range sessions {
				fmt.Printf("%-16s  %-9s  %-10s  %2d/%-2d  %4d%%  %+6d\n",
					ev.CreatedAt.Local().Format("2006-01-02 15:04"),
					ev.Kind, ev.Track, ev.Correct, ev.Total, ev.Accuracy, ev.XP)
			}
		}

		return nil
	},
}
