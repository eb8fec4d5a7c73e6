package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/assistant"
	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/resume"
)

const (
	chatUser       = "cli"
	chatShowJobs   = 5
	chatExitPhrase = "exit"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the job search assistant in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		chat(cmd)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringP("resume", "r", "", "resume file (.pdf or .txt) used to score the shown jobs")
}

func chat(cmd *cobra.Command) {
	ctx := context.Background()

	d, err := setup(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer d.close()

	logger := d.logger

	resumeText, err := resumeFromFlag(cmd)
	if err != nil {
		logger.Fatal("reading the resume", zap.Error(err))
	}

	history := assistant.NewHistory()
	filters := jobs.Filters{}

	prompt := promptui.Prompt{
		Label: "You",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("message is required")
			}
			return nil
		},
	}

	fmt.Printf("Type %q to leave.\n", chatExitPhrase)

	for {
		message, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		message = strings.TrimSpace(message)
		if strings.EqualFold(message, chatExitPhrase) {
			return
		}

		reply := d.assistant.Respond(ctx, message, history.Get(chatUser))
		history.AppendAndTrim(chatUser, assistant.MaxHistory, message, reply.Response)

		fmt.Printf("\nAssistant: %s\n\n", reply.Response)

		if !applyReply(filters, reply) {
			continue
		}

		listings, err := d.board.List(ctx, resumeText, filters)
		if err != nil {
			logger.Error("listing jobs", zap.Error(err))
			continue
		}
		printListings(jobs.Top(listings, chatShowJobs), len(listings))
	}
}

// applyReply merges reply filters into the session filters and reports
// whether anything changed.
func applyReply(filters jobs.Filters, reply assistant.Reply) bool {
	if cleared, ok := reply.Filters[assistant.FilterClear].(bool); ok && cleared {
		for key := range filters {
			delete(filters, key)
		}
		return true
	}

	changed := false
	for key, value := range assistant.ToFilters(reply.Filters) {
		if filters.Get(key) != value {
			filters.Set(key, value)
			changed = true
		}
	}
	return changed
}

func resumeFromFlag(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("resume")
	if path == "" {
		return "", nil
	}
	return resume.ExtractFile(path)
}

func printListings(listings []jobs.Listing, total int) {
	if total == 0 {
		fmt.Println("No jobs match the current filters.")
		return
	}

	fmt.Printf("Top %d of %d jobs:\n", len(listings), total)
	for _, l := range listings {
		fmt.Printf("  [%3d%%] %s | %s at %s (%s, %s)\n", l.MatchScore, l.ID, l.Title, l.Company, l.Location, l.WorkMode)
		if l.MatchExplanation != "" {
			fmt.Printf("         %s\n", l.MatchExplanation)
		}
	}
	fmt.Println()
}
