package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var reposCmd = &cobra.Command{
	Use:   "repos <username>",
	Short: "List a user's repositories, most recently updated first",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepos,
}

func init() {
	rootCmd.AddCommand(reposCmd)
}

func runRepos(cmd *cobra.Command, args []string) error {
	_, svc := newServices(cmd.Context())
	defer svc.Close()

	repos, err := svc.Repos.ListRepositories(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	titleColor := color.New(color.FgHiCyan, color.Bold)
	nameColor := color.New(color.FgHiWhite)
	dimColor := color.New(color.FgHiBlack)

	titleColor.Printf("%d repositories for %s\n\n", len(repos), args[0])
	for _, r := range repos {
		nameColor.Print(r.FullName)
		if r.Language != nil {
			dimColor.Printf("  [%s]", *r.Language)
		}
		dimColor.Printf("  ★ %d\n", r.StargazersCount)
		if r.Description != nil && *r.Description != "" {
			fmt.Printf("    %s\n", *r.Description)
		}
	}
	return nil
}
