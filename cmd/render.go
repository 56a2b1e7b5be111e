package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"prompt-editor/editor"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the prompt strings selected by a keyword file",
	Long: "render loads a keyword file, restores its checked keywords and, if given, applies a preset " +
		"on top. It prints the resulting prompt and negative prompt.",
	RunE: func(cmd *cobra.Command, args []string) error {
		keywords, _ := cmd.Flags().GetString("keywords")
		presetPath, _ := cmd.Flags().GetString("preset")

		ed := editor.New(nil)
		if err := importFile(keywords, ed.ImportKeywords); err != nil {
			return err
		}
		if presetPath != "" {
			if err := importFile(presetPath, ed.ImportPreset); err != nil {
				return err
			}
		}
		out := ed.Outputs()
		fmt.Fprintf(cmd.OutOrStdout(), "prompt: %s\nnegative: %s\n", out.Prompt, out.Negative)
		return nil
	},
}

func init() {
	renderCmd.Flags().String("keywords", "", "keyword file to load")
	renderCmd.Flags().String("preset", "", "preset file applied after the keyword file")
	renderCmd.MarkFlagRequired("keywords")
	rootCmd.AddCommand(renderCmd)
}

// importFile feeds a file to an editor import. Keywords the editor could not
// resolve are logged and skipped.
func importFile(path string, apply func([]byte) (editor.State, error)) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = apply(data)
	var unresolved *editor.UnresolvedError
	if errors.As(err, &unresolved) {
		slog.Warn("skipped keywords", "file", path, "count", len(unresolved.Refs), "detail", unresolved.Error())
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
