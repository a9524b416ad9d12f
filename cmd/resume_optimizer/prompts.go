package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/daniela/resume-optimizer/internal/registry"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Inspect and promote prompt versions",
}

var promptsListCmd = &cobra.Command{
	Use:   "list [skill]",
	Short: "List prompt versions, optionally for one skill",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPromptsList,
}

var promptsCandidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List validated candidates ready for promotion",
	RunE:  runPromptsCandidates,
}

var promptsPromoteCmd = &cobra.Command{
	Use:   "promote <candidate-id>",
	Short: "Promote a validated candidate to production",
	Long:  `Promote a validated candidate: the new text becomes the skill's production prompt version and the previous production version is retired, in one transaction.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptsPromote,
}

func init() {
	promptsCmd.AddCommand(promptsListCmd)
	promptsCmd.AddCommand(promptsCandidatesCmd)
	promptsCmd.AddCommand(promptsPromoteCmd)
	rootCmd.AddCommand(promptsCmd)
}

func runPromptsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	database, err := connectFromEnv(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	skill := ""
	if len(args) == 1 {
		skill = args[0]
	}

	prompts, err := database.ListPrompts(ctx, skill, "")
	if err != nil {
		return fmt.Errorf("list prompts: %w", err)
	}
	if len(prompts) == 0 {
		fmt.Println("no prompts found")
		return nil
	}

	for _, p := range prompts {
		fmt.Printf("%-28s v%-3d %-10s %s\n", p.SkillName, p.Version, p.Status, p.ID)
	}
	return nil
}

func runPromptsCandidates(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	database, err := connectFromEnv(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	candidates, err := database.ListPromotableCandidates(ctx)
	if err != nil {
		return fmt.Errorf("list candidates: %w", err)
	}
	if len(candidates) == 0 {
		fmt.Println("no promotable candidates")
		return nil
	}

	for _, c := range candidates {
		score := "n/a"
		if c.AvgScore != nil {
			score = fmt.Sprintf("%.2f", *c.AvgScore)
		}
		fmt.Printf("%s  %-28s runs=%-4d avg=%-5s %s\n", c.ID, c.SkillName, c.TestRunCount, score, c.ChangeRationale)
	}
	return nil
}

func runPromptsPromote(cmd *cobra.Command, args []string) error {
	candidateID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid candidate id: %w", err)
	}

	ctx := cmd.Context()
	database, err := connectFromEnv(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	prompt, err := registry.New(database).Promote(ctx, candidateID)
	if err != nil {
		return fmt.Errorf("promote: %w", err)
	}

	fmt.Printf("promoted %s to v%d (production)\n", prompt.SkillName, prompt.Version)
	return nil
}
