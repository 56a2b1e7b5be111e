package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"prompt-editor/document"
	"prompt-editor/export"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Rewrite a keyword file in the current format",
	Long: "normalize reads a keyword file, including files using the legacy prompt and negative_prompt " +
		"field names, merges repeated categories and keys, and writes it to the export directory " +
		"under a timestamped name.",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("keywords")
		dir, _ := cmd.Flags().GetString("out")
		if dir == "" {
			dir = loaded.Export.Dir
		}

		data, err := os.ReadFile(in)
		if err != nil {
			return err
		}
		file, err := document.ParseKeywordFile(data)
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
		w, err := export.NewWriter(dir)
		if err != nil {
			return err
		}
		name, err := w.Write(document.KeywordsFile, file, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), name)
		return nil
	},
}

func init() {
	normalizeCmd.Flags().String("keywords", "", "keyword file to read")
	normalizeCmd.Flags().String("out", "", "output directory (default is the configured export dir)")
	normalizeCmd.MarkFlagRequired("keywords")
	rootCmd.AddCommand(normalizeCmd)
}
