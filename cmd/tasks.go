package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/crm-tools/internal/tools"
)

var (
	tasksProject string
	tasksMax     int
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Fetch tasks of a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		return invokeTool(cmd, "get_project_tasks", tools.GetTasksInput{
			ProjectName: tasksProject,
			MaxTasks:    tasksMax,
		})
	},
}

func init() {
	tasksCmd.Flags().StringVar(&tasksProject, "project", "", "exact project name (required)")
	tasksCmd.Flags().IntVar(&tasksMax, "max", 0, "maximum tasks to return (default 10)")
	_ = tasksCmd.MarkFlagRequired("project")
	rootCmd.AddCommand(tasksCmd)
}
