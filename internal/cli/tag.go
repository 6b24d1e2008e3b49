package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stickpad/stickpad/internal/store"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
}

var tagAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagAdd,
}

var tagListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tags",
	RunE:    runTagList,
}

var tagRemoveCmd = &cobra.Command{
	Use:     "remove [name]",
	Aliases: []string{"rm"},
	Short:   "Delete a tag and detach it from every note",
	Args:    cobra.ExactArgs(1),
	RunE:    runTagRemove,
}

var tagRenameCmd = &cobra.Command{
	Use:   "rename [name] [new-name]",
	Short: "Rename a tag",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagRename,
}

var attachCmd = &cobra.Command{
	Use:   "attach [note-id] [tag-name]",
	Short: "Attach a tag to a note",
	Args:  cobra.ExactArgs(2),
	RunE:  runAttach,
}

var detachCmd = &cobra.Command{
	Use:   "detach [note-id] [tag-name]",
	Short: "Detach a tag from a note",
	Args:  cobra.ExactArgs(2),
	RunE:  runDetach,
}

var tagColor string

func init() {
	tagAddCmd.Flags().StringVar(&tagColor, "color", "", "Tag color (hex)")
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagRemoveCmd)
	tagCmd.AddCommand(tagRenameCmd)
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	notes, database, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	name := args[0]
	if _, ok := notes.TagByName(name); ok {
		return fmt.Errorf("tag already exists: %s", name)
	}

	tag, err := notes.AddTag(ctx, name, tagColor)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	fmt.Printf("✓ Created tag #%s (%s)\n", tag.Name, tag.Color)
	return nil
}

func runTagList(cmd *cobra.Command, args []string) error {
	notes, database, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	tags := notes.Tags()
	if len(tags) == 0 {
		fmt.Println("No tags yet. Create one with: stickpad tag add work")
		return nil
	}

	// Count usage across active notes
	usage := make(map[string]int)
	for _, n := range notes.ActiveNotes() {
		for _, id := range n.Tags {
			usage[id]++
		}
	}

	fmt.Printf("\n🏷  Tags (%d)\n", len(tags))
	fmt.Println(strings.Repeat("─", 40))
	for _, t := range tags {
		fmt.Printf("  #%-20s %s  %d note(s)\n", t.Name, t.Color, usage[t.ID])
	}
	fmt.Println()
	return nil
}

func runTagRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	notes, database, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	tag, ok := notes.TagByName(args[0])
	if !ok {
		return fmt.Errorf("tag not found: %s", args[0])
	}

	if err := notes.RemoveTag(ctx, tag.ID); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	fmt.Printf("🗑  Deleted tag #%s\n", tag.Name)
	return nil
}

func runTagRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	notes, database, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	tag, ok := notes.TagByName(args[0])
	if !ok {
		return fmt.Errorf("tag not found: %s", args[0])
	}

	newName := args[1]
	if err := notes.UpdateTag(ctx, tag.ID, store.TagPatch{Name: &newName}); err != nil {
		return fmt.Errorf("failed to rename tag: %w", err)
	}

	fmt.Printf("✓ Renamed #%s to #%s\n", args[0], newName)
	return nil
}

func runAttach(cmd *cobra.Command, args []string) error {
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
	tag, ok := notes.TagByName(args[1])
	if !ok {
		return fmt.Errorf("tag not found: %s", args[1])
	}

	if err := notes.AddTagToNote(ctx, id, tag.ID); err != nil {
		return fmt.Errorf("failed to attach tag: %w", err)
	}

	fmt.Printf("✓ Attached #%s\n", tag.Name)
	return nil
}

func runDetach(cmd *cobra.Command, args []string) error {
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
	tag, ok := notes.TagByName(args[1])
	if !ok {
		return fmt.Errorf("tag not found: %s", args[1])
	}

	if err := notes.RemoveTagFromNote(ctx, id, tag.ID); err != nil {
		return fmt.Errorf("failed to detach tag: %w", err)
	}

	fmt.Printf("✓ Detached #%s\n", tag.Name)
	return nil
}
