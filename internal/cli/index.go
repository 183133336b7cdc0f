package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dpolishuk/repoprofile/backend/internal/indexer"
)

var indexUser string

var indexCmd = &cobra.Command{
	Use:   "index <repository>...",
	Short: "Index repositories into a new file search store",
	Long: `Index selects up to the configured number of files per repository,
uploads them into a new Gemini file search store and waits for each upload.

Repositories may be given as owner/name or as a bare name owned by --user.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().StringVarP(&indexUser, "user", "u", "", "GitHub username the store is created for")
	indexCmd.MarkFlagRequired("user")
}

func runIndex(cmd *cobra.Command, args []string) error {
	key := resolveAPIKey()
	if key == "" {
		return errors.New("Gemini API key is required")
	}

	_, svc := newServices(cmd.Context())
	defer svc.Close()

	result, err := svc.Pipeline.Index(cmd.Context(), indexer.Request{
		Username:     indexUser,
		Repositories: args,
		APIKey:       key,
	})
	if err != nil {
		return err
	}

	successColor := color.New(color.FgHiGreen, color.Bold)
	dimColor := color.New(color.FgHiBlack)

	successColor.Printf("Indexed %d files from %d repositories\n", result.FilesIndexed, len(args))
	dimColor.Printf("%d uploads confirmed\n", result.Confirmed())
	fmt.Println(result.StoreName)
	return nil
}
