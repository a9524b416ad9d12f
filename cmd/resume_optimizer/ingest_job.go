package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/daniela/resume-optimizer/internal/ingest"
)

var (
	ingestUserID  string
	ingestBrowser bool
	ingestVerbose bool
)

var ingestJobCmd = &cobra.Command{
	Use:   "ingest-job <url>",
	Short: "Fetch a job posting URL and store it for a user",
	Long:  `Fetch a job posting page, extract its title, company, location and text, and save it as a job description owned by the given user. Pages that render mostly in JavaScript can be re-fetched with a headless browser via --browser.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runIngestJob,
}

func init() {
	ingestJobCmd.Flags().StringVar(&ingestUserID, "user", "", "Owning user ID (required)")
	ingestJobCmd.Flags().BoolVar(&ingestBrowser, "browser", false, "Allow headless-browser fallback for JS-heavy pages")
	ingestJobCmd.Flags().BoolVar(&ingestVerbose, "verbose", false, "Log fetch details")
	_ = ingestJobCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(ingestJobCmd)
}

func runIngestJob(cmd *cobra.Command, args []string) error {
	userID, err := uuid.Parse(ingestUserID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	ctx := cmd.Context()
	posting, err := ingest.FromURL(ctx, args[0], ingestBrowser, ingestVerbose)
	if err != nil {
		return fmt.Errorf("fetch posting: %w", err)
	}

	database, err := connectFromEnv(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	jobID, err := database.CreateJobDescription(ctx, userID, posting.Input())
	if err != nil {
		return fmt.Errorf("save job description: %w", err)
	}

	fmt.Printf("saved job %s\n", jobID)
	fmt.Printf("  title:   %s\n", posting.Title)
	if posting.Company != "" {
		fmt.Printf("  company: %s\n", posting.Company)
	}
	if posting.Location != "" {
		fmt.Printf("  location: %s\n", posting.Location)
	}
	if len(posting.RequiredSkills) > 0 {
		fmt.Printf("  skills:  %s\n", strings.Join(posting.RequiredSkills, ", "))
	}
	if posting.RenderedInBrowser {
		fmt.Println("  (rendered with headless browser)")
	}
	return nil
}
