package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/crm-tools/internal/tools"
)

var leadCmd = &cobra.Command{
	Use:   "lead",
	Short: "Create, classify, and qualify CRM leads",
}

var (
	leadCreateName        string
	leadCreateCompany     string
	leadCreateContact     string
	leadCreateEmail       string
	leadCreatePhone       string
	leadCreateDescription string
	leadCreateTags        []string
)

var leadCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new lead",
	RunE: func(cmd *cobra.Command, args []string) error {
		return invokeTool(cmd, "create_lead", tools.CreateLeadInput{
			Name:        leadCreateName,
			CompanyName: leadCreateCompany,
			ContactName: leadCreateContact,
			Email:       leadCreateEmail,
			Phone:       leadCreatePhone,
			Description: leadCreateDescription,
			Tags:        leadCreateTags,
		})
	},
}

var (
	leadQualifyEmail    string
	leadQualifyText     string
	leadQualifyAssignMe bool
)

var leadQualifyCmd = &cobra.Command{
	Use:   "qualify",
	Short: "Classify inbound text and update the matching lead",
	RunE: func(cmd *cobra.Command, args []string) error {
		return invokeTool(cmd, "qualify_lead", tools.QualifyLeadInput{
			Email:      leadQualifyEmail,
			LeadText:   leadQualifyText,
			AssignToMe: leadQualifyAssignMe,
		})
	},
}

var leadClassifyText string

var leadClassifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify inbound text without touching any record",
	RunE: func(cmd *cobra.Command, args []string) error {
		return invokeTool(cmd, "classify_lead", tools.ClassifyLeadInput{
			LeadText: leadClassifyText,
		})
	},
}

// invokeTool dispatches one tool call through the registry and prints the
// result envelope as indented JSON.
func invokeTool(cmd *cobra.Command, name string, input any) error {
	ctx := cmd.Context()

	env, err := initService(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	args, err := json.Marshal(input)
	if err != nil {
		return eris.Wrapf(err, "encode %s arguments", name)
	}

	payload, err := env.Registry.Invoke(ctx, name, args)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func init() {
	leadCreateCmd.Flags().StringVar(&leadCreateName, "name", "", "lead title (required)")
	leadCreateCmd.Flags().StringVar(&leadCreateCompany, "company", "", "company name")
	leadCreateCmd.Flags().StringVar(&leadCreateContact, "contact", "", "contact person")
	leadCreateCmd.Flags().StringVar(&leadCreateEmail, "email", "", "contact email address")
	leadCreateCmd.Flags().StringVar(&leadCreatePhone, "phone", "", "phone number")
	leadCreateCmd.Flags().StringVar(&leadCreateDescription, "description", "", "free-form notes")
	leadCreateCmd.Flags().StringSliceVar(&leadCreateTags, "tag", nil, "tag name to attach (repeatable)")
	_ = leadCreateCmd.MarkFlagRequired("name")

	leadQualifyCmd.Flags().StringVar(&leadQualifyEmail, "email", "", "email identifying the lead record (required)")
	leadQualifyCmd.Flags().StringVar(&leadQualifyText, "text", "", "inbound lead text to classify (required)")
	leadQualifyCmd.Flags().BoolVar(&leadQualifyAssignMe, "assign-to-me", false, "assign the lead to the authenticated operator")
	_ = leadQualifyCmd.MarkFlagRequired("email")
	_ = leadQualifyCmd.MarkFlagRequired("text")

	leadClassifyCmd.Flags().StringVar(&leadClassifyText, "text", "", "inbound lead text to classify (required)")
	_ = leadClassifyCmd.MarkFlagRequired("text")

	leadCmd.AddCommand(leadCreateCmd)
	leadCmd.AddCommand(leadQualifyCmd)
	leadCmd.AddCommand(leadClassifyCmd)
	rootCmd.AddCommand(leadCmd)
}
