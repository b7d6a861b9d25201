package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/geostack-dev/geostack/pkg/svc/backup"
	"github.com/geostack-dev/geostack/pkg/utils/notify"
	"github.com/geostack-dev/geostack/pkg/utils/timer"
)

// NewBackupCmd creates and returns the backup command group.
func NewBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "backup",
		Short:        "Manage database backups",
		SilenceUsage: true,
	}

	cmd.AddCommand(newBackupCreateCmd())
	cmd.AddCommand(newBackupListCmd())

	return cmd
}

func newBackupCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a database backup and prune old ones",
		Long: `Dump the database into the backup directory and remove dumps beyond the
configured retention count.`,
		SilenceUsage: true,
		RunE:         runBackupCreate,
	}
}

func runBackupCreate(cmd *cobra.Command, _ []string) error {
	stack, err := loadStack(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	tmr := timer.New()
	tmr.Start()

	_, _ = fmt.Fprintln(out)
	notify.Titlef(out, "💾", "Back up database...")
	notify.Activityf(out, "dumping database '%s'", stack.Spec.Database.Name)

	manager := backup.NewManager(
		stack.Spec.Database,
		stack.Spec.Backup,
		newComposeClient(cmd, stack.Spec),
	)

	path, err := manager.Create(cmd.Context())
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	notify.Generatef(out, "wrote '%s'", path)

	removed, err := manager.Prune()
	if err != nil {
		return fmt.Errorf("prune old backups: %w", err)
	}

	for _, old := range removed {
		notify.Infof(out, "pruned old backup '%s'", filepath.Base(old))
	}

	notify.SuccessWithTimerf(out, tmr, "backup complete")

	return nil
}

func newBackupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List existing database backups",
		SilenceUsage: true,
		RunE:         runBackupList,
	}
}

func runBackupList(cmd *cobra.Command, _ []string) error {
	stack, err := loadStack(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	manager := backup.NewManager(
		stack.Spec.Database,
		stack.Spec.Backup,
		newComposeClient(cmd, stack.Spec),
	)

	dumps, err := manager.List()
	if err != nil {
		return err
	}

	if len(dumps) == 0 {
		notify.Infof(out, "no backups found in '%s'", stack.Spec.Backup.Directory)

		return nil
	}

	for _, dump := range dumps {
		notify.Infof(out, "%s", dump)
	}

	return nil
}
