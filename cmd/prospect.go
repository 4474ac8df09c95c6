package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/crm-tools/internal/tools"
)

var (
	prospectCompany  string
	prospectRole     string
	prospectMaxLeads int
)

var prospectCmd = &cobra.Command{
	Use:   "prospect",
	Short: "Search for people at a company and create leads for them",
	RunE: func(cmd *cobra.Command, args []string) error {
		return invokeTool(cmd, "prospect_leads", tools.ProspectInput{
			Company:  prospectCompany,
			Role:     prospectRole,
			MaxLeads: prospectMaxLeads,
		})
	},
}

func init() {
	prospectCmd.Flags().StringVar(&prospectCompany, "company", "", "company to prospect (required)")
	prospectCmd.Flags().StringVar(&prospectRole, "role", "", "role title (default: product manager)")
	prospectCmd.Flags().IntVar(&prospectMaxLeads, "max", 0, "maximum leads to create (default 5)")
	_ = prospectCmd.MarkFlagRequired("company")
	rootCmd.AddCommand(prospectCmd)
}
