package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var profileFocus string

var profileCmd = &cobra.Command{
	Use:   "profile <storeName>",
	Short: "Generate a 20-point coding profile from an indexed store",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVar(&profileFocus, "focus", "", "Theme to emphasize, e.g. \"testing\"")
}

func runProfile(cmd *cobra.Command, args []string) error {
	key := resolveAPIKey()
	if key == "" {
		return errors.New("Gemini API key is required")
	}

	_, svc := newServices(cmd.Context())
	defer svc.Close()

	profile, err := svc.Profiles.Generate(cmd.Context(), args[0], key, profileFocus)
	if err != nil {
		return err
	}

	titleColor := color.New(color.FgHiCyan, color.Bold)
	dimColor := color.New(color.FgHiBlack)

	titleColor.Printf("Coding profile for %s\n\n", args[0])
	for i, item := range profile {
		dimColor.Printf("%2d. ", i+1)
		fmt.Println(item)
	}
	return nil
}
