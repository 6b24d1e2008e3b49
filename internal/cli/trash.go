package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stickpad/stickpad/internal/config"
)

var trashCmd = &cobra.Command{
	Use:   "trash [note-id]",
	Short: "Move a note to the trash",
	Long: `Move a note to the trash. Trashed notes can be restored until they are
purged or swept by the retention policy.

Examples:
  stickpad trash abc12345`,
	Args: cobra.ExactArgs(1),
	RunE: runTrash,
}

var restoreCmd = &cobra.Command{
	Use:   "restore [note-id]",
	Short: "Restore a note from the trash",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestore,
}

var purgeCmd = &cobra.Command{
	Use:   "purge [note-id]",
	Short: "Delete a note permanently",
	Long: `Delete a note permanently. This removes the note and its tag
associations from storage and cannot be undone.

Pass --all to empty the trash.`,
	RunE: runPurge,
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the trash retention sweep",
	Long: `Run the trash retention sweep. Trashed notes older than the configured
retention window are purged. Does nothing unless auto_clean is enabled in
the config.`,
	RunE: runSweep,
}

var purgeAll bool

func init() {
	purgeCmd.Flags().BoolVar(&purgeAll, "all", false, "Empty the trash")
}

func runTrash(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	notes, database, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	id, err := resolveNote(notes, args[0])
	if err != nil {
		return err
	}

	note, _ := notes.NoteByID(id)
	if err := notes.MoveToTrash(ctx, id); err != nil {
		return fmt.Errorf("failed to trash note: %w", err)
	}

	fmt.Printf("🗑  Trashed: %q\n", note.Title)
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	notes, database, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	id, err := resolveNote(notes, args[0])
	if err != nil {
		return err
	}

	note, _ := notes.NoteByID(id)
	if !note.Deleted {
		fmt.Printf("%q is not in the trash.\n", note.Title)
		return nil
	}

	if err := notes.RestoreFromTrash(ctx, id); err != nil {
		return fmt.Errorf("failed to restore note: %w", err)
	}

	fmt.Printf("✓ Restored: %q\n", note.Title)
	return nil
}

func runPurge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	notes, database, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	if purgeAll {
		trashed := notes.TrashNotes()
		if len(trashed) == 0 {
			fmt.Println("Trash is empty.")
			return nil
		}
		if cfg.ConfirmDelete && !confirm(fmt.Sprintf("Permanently delete %d trashed note(s)?", len(trashed))) {
			fmt.Println("Cancelled.")
			return nil
		}
		if err := notes.EmptyTrash(ctx); err != nil {
			return fmt.Errorf("failed to empty trash: %w", err)
		}
		fmt.Printf("🗑  Emptied the trash (%d notes).\n", len(trashed))
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("expected a note id (or --all)")
	}

	id, err := resolveNote(notes, args[0])
	if err != nil {
		return err
	}
	note, _ := notes.NoteByID(id)

	if cfg.ConfirmDelete && !confirm(fmt.Sprintf("Permanently delete %q? This cannot be undone.", note.Title)) {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := notes.DeletePermanently(ctx, id); err != nil {
		return fmt.Errorf("failed to purge note: %w", err)
	}

	fmt.Printf("🗑  Permanently deleted: %q\n", note.Title)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	notes, database, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	if !cfg.AutoClean {
		fmt.Println("Auto-clean is disabled. Enable it with: stickpad config set auto_clean true")
		return nil
	}

	before := len(notes.TrashNotes())
	if err := notes.AutoCleanTrash(ctx, cfg.Trash()); err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}
	swept := before - len(notes.TrashNotes())

	fmt.Printf("🧹 Swept %d expired note(s) from the trash (retention: %d days).\n", swept, cfg.RetentionDays)
	return nil
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	var response string
	_, _ = fmt.Scanln(&response)
	return strings.ToLower(response) == "y"
}
