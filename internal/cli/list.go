package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stickpad/stickpad/internal/model"
	"github.com/stickpad/stickpad/internal/store"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes",
	Long: `List notes, optionally filtered by tag or free-text search.

Examples:
  stickpad list
  stickpad list --tag work
  stickpad list --search groceries
  stickpad list --trash`,
	RunE: runList,
}

var (
	listTag    string
	listSearch string
	listTrash  bool
)

func init() {
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "Filter by tag name")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Filter by free-text search")
	listCmd.Flags().BoolVar(&listTrash, "trash", false, "Show trashed notes instead")
}

func runList(cmd *cobra.Command, args []string) error {
	notes, database, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
	}()

	if listTrash {
		printTrash(notes)
		return nil
	}

	if listTag != "" {
		tag, ok := notes.TagByName(listTag)
		if !ok {
			return fmt.Errorf("tag not found: %s", listTag)
		}
		notes.SelectTag(tag.ID)
	}
	notes.SetSearchQuery(listSearch)

	filtered := notes.FilteredNotes()
	if len(filtered) == 0 {
		fmt.Println("No notes found. Add one with: stickpad add \"Your note\"")
		return nil
	}

	fmt.Printf("\n📝 Notes (%d)\n", len(filtered))
	fmt.Println(strings.Repeat("─", 64))
	for _, n := range filtered {
		printNote(notes, n)
	}
	fmt.Println()
	return nil
}

func printTrash(s *store.Store) {
	trashed := s.TrashNotes()
	if len(trashed) == 0 {
		fmt.Println("Trash is empty.")
		return
	}

	fmt.Printf("\n🗑  Trash (%d)\n", len(trashed))
	fmt.Println(strings.Repeat("─", 64))
	for _, n := range trashed {
		deleted := ""
		if n.DeletedAt != nil {
			deleted = n.DeletedAt.Format("Jan 2")
		}
		fmt.Printf("  %-8s  %-40s  deleted %s\n", n.ID[:8], truncate(n.Title, 40), deleted)
	}
	fmt.Println()
}

func printNote(s *store.Store, n model.Note) {
	marker := " "
	if n.Pinned {
		marker = "📌"
	}

	body := n.Content
	if n.Encrypted() {
		body = "🔒 (encrypted)"
	}

	var tagNames []string
	for _, id := range n.Tags {
		if name, ok := s.TagName(id); ok {
			tagNames = append(tagNames, "#"+name)
		}
	}

	fmt.Printf("  %s %-8s  %-28s  %-20s  %s %s\n",
		marker, n.ID[:8], truncate(n.Title, 28), truncate(body, 20),
		n.UpdatedAt.Format(time.DateOnly), strings.Join(tagNames, " "))
}

// truncate shortens a string to max length with ellipsis
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
