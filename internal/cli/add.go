package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new note",
	Long: `Add a new note.

Examples:
  stickpad add "Buy groceries"
  stickpad add "Meeting notes" -c "agenda: roadmap review"
  stickpad add "Ideas" --color "#4ECDC4" --tag work --tag someday`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addContent string
	addColor   string
	addTags    []string
)

func init() {
	addCmd.Flags().StringVarP(&addContent, "content", "c", "", "Note content")
	addCmd.Flags().StringVar(&addColor, "color", "", "Note color (hex, e.g. #FFE66D)")
	addCmd.Flags().StringArrayVarP(&addTags, "tag", "t", nil, "Tag name (repeatable, created if missing)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	notes, database, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	title := strings.Join(args, " ")

	// Resolve tag names, creating missing ones on the fly
	var tagIDs []string
	for _, name := range addTags {
		tag, ok := notes.TagByName(name)
		if !ok {
			created, err := notes.AddTag(ctx, name, "")
			if err != nil {
				return fmt.Errorf("failed to create tag %q: %w", name, err)
			}
			tag = *created
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	note, err := notes.AddNote(ctx, title, addContent, addColor, tagIDs)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	fmt.Printf("✓ Added %q (%s)\n", note.Title, note.ID[:8])
	return nil
}
