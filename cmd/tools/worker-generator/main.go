// cmd/tools/worker-generator/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"admission-workers/pkg/registry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		registryPath string
		outDir       string
		force        bool
	)

	cmd := &cobra.Command{
		Use:   "worker-generator <activity-id>",
		Short: "Scaffold a worker package from its activity registry entry",
		Long: "Generates config.go, models.go, handler.go and handler_test.go for a registered activity. " +
			"Input and output structs are derived from the activity's JSON schemas.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(registryPath)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			activity, ok := findActivity(reg, args[0])
			if !ok {
				return fmt.Errorf("%w: %s", registry.ErrActivityNotFound, args[0])
			}

			files, err := render(NewWorkerData(*activity))
			if err != nil {
				return err
			}

			dir := filepath.Join(outDir, categoryDir(activity.Category), activity.ID)
			written, err := writeFiles(dir, files, force)
			if err != nil {
				return err
			}
			for _, f := range written {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Generated %s\n", f)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&registryPath, "registry", "configs/activity-registry.json", "Path to registry file")
	f.StringVar(&outDir, "out", "internal/workers", "Root directory for worker packages")
	f.BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}

func findActivity(reg *registry.ActivityRegistry, id string) (*registry.Activity, bool) {
	for i := range reg.Activities {
		if reg.Activities[i].ID == id {
			return &reg.Activities[i], true
		}
	}
	return reg.ByTaskType(id)
}

func categoryDir(category string) string {
	if category == "" {
		return "admissions"
	}
	return category
}

func writeFiles(dir string, files map[string][]byte, force bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	var written []string
	for _, name := range fileOrder {
		data, ok := files[name]
		if !ok {
			continue
		}
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil && !force {
			return written, fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
