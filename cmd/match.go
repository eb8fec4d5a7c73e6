package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/jobs"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score the job feed against a resume file",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("resume", "r", "", "resume file (.pdf or .txt)")
	matchCmd.Flags().BoolP("best", "b", false, "show only the best matches")
	matchCmd.Flags().StringToStringP("filter", "f", nil, "job filters, e.g. -f workMode=remote -f matchScore=high")
	matchCmd.Flags().IntP("limit", "n", 10, "how many jobs to print (0 prints all)")
	matchCmd.Flags().Bool("output-json", false, "print listings as json")
}

func match(cmd *cobra.Command) {
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
	if resumeText == "" {
		logger.Warn("no resume given, every job scores zero")
	}

	var listings []jobs.Listing
	if best, _ := cmd.Flags().GetBool("best"); best {
		listings, err = d.board.BestMatches(ctx, resumeText)
	} else {
		raw, _ := cmd.Flags().GetStringToString("filter")
		filters := jobs.Filters{}
		for key, value := range raw {
			if !jobs.IsKey(key) {
				logger.Fatal("unknown filter", zap.String("filter", key), zap.Strings("known", jobs.Keys))
			}
			filters.Set(key, value)
		}
		listings, err = d.board.List(ctx, resumeText, filters)
	}
	if err != nil {
		logger.Fatal("scoring jobs", zap.Error(err))
	}

	total := len(listings)
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		listings = jobs.Top(listings, limit)
	}

	if asJSON, _ := cmd.Flags().GetBool("output-json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(listings); err != nil {
			logger.Fatal("writing listings", zap.Error(err))
		}
		return
	}

	printListings(listings, total)
	fmt.Printf("%d job(s) scored\n", total)
}
