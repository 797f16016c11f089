package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List your lab records",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		records, err := apiClient.ListRecords()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No lab records yet. Create one with \"labrec new\".")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tTEMPLATE\tUPDATED")
		for _, record := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				record.ID, record.Title, record.TemplateType,
				record.UpdatedAt.Local().Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var newCmd = &cobra.Command{
	Use:   "new <title> <template>",
	Short: "Create a lab record from a template (physics, chemistry or computer)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		record, err := apiClient.CreateRecord(args[0], args[1])
		if err != nil {
			return err
		}

		sections, err := apiClient.ListSections(record.ID)
		if err != nil {
			return err
		}

		fmt.Printf("Created %q (%s) with %d sections:\n", record.Title, record.ID, len(sections))
		for _, section := range sections {
			fmt.Printf("  %d. %s\n", section.Order+1, section.Title)
		}
		return nil
	},
}

var duplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Duplicate a lab record and its sections",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		clone, err := apiClient.DuplicateRecord(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created %q (%s)\n", clone.Title, clone.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(duplicateCmd)
}
