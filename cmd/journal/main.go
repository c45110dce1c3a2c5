package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"inkwell/internal/journal"
	"inkwell/internal/storage"
)

var dbPath string

func main() {
	// Default database location matches the API server's default
	defaultDB := filepath.Join(".", "data", "inkwell.db")

	rootCmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect and export the journal database",
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "database path")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(tagsCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStore() (*journal.Store, func(), error) {
	db, err := storage.New(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}

	store, err := journal.Load(context.Background(), storage.NewKVRepo(db), journal.Options{})
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		_ = db.Close()
	}
	return store, cleanup, nil
}

func listCmd() *cobra.Command {
	var folderID, tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			var entries []journal.Entry
			switch {
			case tag != "":
				entries = store.EntriesByTag(tag)
			case folderID != "":
				if folderID == "root" {
					folderID = ""
				}
				entries = store.EntriesByFolder(folderID)
			default:
				entries = store.Entries()
			}

			if len(entries) == 0 {
				fmt.Println("(no entries)")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("%s  %s  %s\n", shortID(e.ID), e.CreatedAt.Format("2006-01-02"), truncate(title(e), 60))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "filter by folder id (use \"root\" for unfiled)")
	cmd.Flags().StringVar(&tag, "tag", "", "filter by tag")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a single entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			entry, ok := store.Entry(args[0])
			if !ok {
				return fmt.Errorf("entry not found: %s", args[0])
			}

			fmt.Printf("Title:   %s\n", title(entry))
			fmt.Printf("Created: %s\n", entry.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Printf("Updated: %s\n", entry.UpdatedAt.Format("2006-01-02 15:04"))
			if entry.FolderID != "" {
				fmt.Printf("Folder:  %s\n", entry.FolderID)
			}
			if len(entry.Tags) > 0 {
				fmt.Printf("Tags:    %s\n", strings.Join(entry.Tags, ", "))
			}
			if entry.Sentiment != nil {
				fmt.Printf("Mood:    %+.2f\n", *entry.Sentiment)
			}
			fmt.Printf("\n%s\n", entry.Content)
			return nil
		},
	}
}

func tagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List all tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			tags := store.AllTags()
			if len(tags) == 0 {
				fmt.Println("(no tags)")
				return nil
			}
			for _, tag := range tags {
				fmt.Println(tag)
			}
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump all collections as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			dump := struct {
				Entries    []journal.Entry    `json:"entries"`
				Folders    []journal.Folder   `json:"folders"`
				Categories []journal.Category `json:"categories"`
			}{
				Entries:    store.Entries(),
				Folders:    store.Folders(),
				Categories: store.Categories(),
			}

			data, err := json.MarshalIndent(dump, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal export: %w", err)
			}

			if out == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Printf("Exported %d entries to %s\n", len(dump.Entries), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	return cmd
}

func title(e journal.Entry) string {
	if e.Title == "" {
		return "(untitled)"
	}
	return e.Title
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
