// cmd/tools/registry-updater/main.go
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"admission-workers/internal/common/validation"
	"admission-workers/pkg/registry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var path string

	root := &cobra.Command{
		Use:          "registry-updater",
		Short:        "Maintain the activity registry that binds task types to input schemas",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&path, "path", "configs/activity-registry.json", "Path to registry file")

	root.AddCommand(
		newListCmd(&path),
		newAddCmd(&path),
		newUpdateCmd(&path),
		newValidateCmd(&path),
	)
	return root
}

func newListCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered activities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			return printActivities(cmd.OutOrStdout(), reg)
		},
	}
}

func printActivities(w io.Writer, reg *registry.ActivityRegistry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTASK TYPE\tCATEGORY\tSTATUS\tTIMEOUT\tSCHEMA")
	for _, a := range reg.Activities {
		schema := "no"
		if a.HasInputSchema() {
			schema = "yes"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", a.ID, a.TaskType, a.Category, a.ImplementationStatus, a.Timeout, schema)
	}
	return tw.Flush()
}

func newAddCmd(path *string) *cobra.Command {
	a := registry.Activity{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.TaskType == "" {
				a.TaskType = a.ID
			}
			a.InputSchema = map[string]interface{}{}
			a.OutputSchema = map[string]interface{}{}
			a.ErrorCodes = []string{}
			a.Workflows = []string{}
			a.Tags = []string{}

			reg, err := registry.LoadOrEmpty(*path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := reg.Add(a); err != nil {
				return err
			}
			if err := reg.Save(*path); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added activity: %s\n", a.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&a.ID, "id", "", "Activity ID (e.g., score-document)")
	f.StringVar(&a.DisplayName, "displayName", "", "Display Name (e.g., Score Document)")
	f.StringVar(&a.Description, "description", "", "Description")
	f.StringVar(&a.Category, "category", "", "Category (e.g., admissions)")
	f.StringVar(&a.TaskType, "taskType", "", "Zeebe task type (defaults to the ID)")
	f.StringVar(&a.Version, "version", "1.0.0", "Version")
	f.StringVar(&a.ImplementationStatus, "status", "planned", "Implementation Status (planned, in-progress, completed, verified)")
	f.StringVar(&a.Timeout, "timeout", "30s", "Job timeout")
	f.IntVar(&a.Retries, "retries", 3, "Broker retries")
	for _, name := range []string{"id", "displayName", "category"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
	return cmd
}

func newUpdateCmd(path *string) *cobra.Command {
	var id, field, value string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Set one field of an activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := reg.Update(id, field, value); err != nil {
				return err
			}
			if err := reg.Save(*path); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s, field %s to %s\n", id, field, value)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&id, "id", "", "Activity ID to update")
	f.StringVar(&field, "field", "", "Field to update (status, version, displayName, description, category, taskType, timeout, retries)")
	f.StringVar(&value, "value", "", "New value for the field")
	for _, name := range []string{"id", "field", "value"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
	return cmd
}

func newValidateCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check registry fields and compile every input schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := reg.Validate(); err != nil {
				return fmt.Errorf("registry validation failed: %w", err)
			}
			if err := validation.NewValidator(reg).CompileAll(); err != nil {
				return fmt.Errorf("schema compilation failed: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Registry validation passed.")
			return nil
		},
	}
}
