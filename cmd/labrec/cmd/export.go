package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagFormat    string
	flagOutput    string
	flagLandscape bool
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Download a lab record as PDF or DOCX",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		if flagFormat != "pdf" && flagFormat != "docx" {
			return fmt.Errorf("format must be pdf or docx")
		}

		data, err := apiClient.ExportRecord(args[0], flagFormat, flagLandscape)
		if err != nil {
			return err
		}

		dest := flagOutput
		if dest == "" {
			dest = args[0] + "." + flagFormat
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}

		fmt.Printf("Wrote %s (%d bytes)\n", dest, len(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&flagFormat, "format", "pdf", "Export format: pdf or docx")
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Destination file (default: <id>.<format>)")
	exportCmd.Flags().BoolVar(&flagLandscape, "landscape", false, "Landscape orientation (PDF only)")
	rootCmd.AddCommand(exportCmd)
}
