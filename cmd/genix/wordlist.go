package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nao1215/genix/internal/config"
	"github.com/nao1215/genix/internal/database"
	"github.com/nao1215/genix/internal/entropy"
	"github.com/nao1215/genix/internal/wordlist"
	"github.com/spf13/cobra"
)

// NewWordlistCmd creates the wordlist command and its subcommands.
func NewWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Manage the passphrase wordlist catalog",
		Long: `Wordlist manages named passphrase wordlists stored in a local SQLite catalog.

Imported lists are deduplicated, normalized and stored with a checksum that
is verified every time the list is used. Use an imported list with
"genix generate --style passphrase --wordlist-name <name>".

Examples:
  genix wordlist import eff-large eff_large_wordlist.txt
  genix wordlist list
  genix wordlist show eff-large
  genix wordlist remove eff-large`,
	}

	cmd.PersistentFlags().String("db-dir", config.XDGDataDir(), "Wordlist catalog directory")

	cmd.AddCommand(newWordlistImportCmd())
	cmd.AddCommand(newWordlistListCmd())
	cmd.AddCommand(newWordlistShowCmd())
	cmd.AddCommand(newWordlistRemoveCmd())

	return cmd
}

func newWordlistImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <name> <file>",
		Short: "Import a wordlist file into the catalog",
		Long: `Import reads a plain (one word per line) or diceware (roll, then word)
wordlist file and stores it under name, replacing any list with that name.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]

			wl, err := wordlist.LoadFile(path)
			if err != nil {
				return fmt.Errorf("failed to load wordlist: %w", err)
			}

			catalog, err := openCatalog(cmd, true)
			if err != nil {
				return err
			}
			defer catalog.Close()

			if err := catalog.SaveWordlist(cmd.Context(), name, path, wl); err != nil {
				return err
			}

			setupLogger(cmd).Debug("imported wordlist", "name", name, "path", path, "db", catalog.Path())
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d words as %q (%.2f bits per word)\n",
				wl.WordCount(), name, bitsPerWord(wl.WordCount()))
			return nil
		},
	}
}

func newWordlistListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List imported wordlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return err
			}

			catalog, err := openCatalog(cmd, true)
			if err != nil {
				return err
			}
			defer catalog.Close()

			lists, err := catalog.ListWordlists(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if lists == nil {
					lists = []database.WordlistInfo{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(lists)
			}

			if len(lists) == 0 {
				fmt.Fprintln(out, "No wordlists imported.")
				return nil
			}
			for _, info := range lists {
				fmt.Fprintf(out, "%-20s %7d words  %6.2f bits/word  %s\n",
					info.Name, info.WordCount, bitsPerWord(info.WordCount), info.ImportedAt.Format(time.DateOnly))
			}
			return nil
		},
	}

	cmd.Flags().BoolP("json", "j", false, "Output as JSON")

	return cmd
}

func newWordlistShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show an imported wordlist",
		Long:  `Show verifies the checksum of an imported wordlist and prints its details and first words.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			head, err := cmd.Flags().GetInt("head")
			if err != nil {
				return err
			}

			catalog, err := openCatalog(cmd, false)
			if err != nil {
				return err
			}
			defer catalog.Close()

			info, err := catalog.GetWordlistInfo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			wl, err := catalog.LoadWordlist(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:      %s\n", info.Name)
			fmt.Fprintf(out, "Source:    %s\n", info.Source)
			fmt.Fprintf(out, "Words:     %d (%.2f bits per word)\n", info.WordCount, bitsPerWord(info.WordCount))
			fmt.Fprintf(out, "Checksum:  %s (verified)\n", info.Checksum)
			fmt.Fprintf(out, "Imported:  %s\n", info.ImportedAt.Format(time.RFC3339))

			if head > 0 {
				words := wl.Words()
				if head < len(words) {
					words = words[:head]
				}
				fmt.Fprintf(out, "First:     %s\n", strings.Join(words, " "))
			}
			return nil
		},
	}

	cmd.Flags().Int("head", 10, "Number of words to print (0 to print none)")

	return cmd
}

func newWordlistRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove an imported wordlist",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := openCatalog(cmd, false)
			if err != nil {
				return err
			}
			defer catalog.Close()

			if err := catalog.DeleteWordlist(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", args[0])
			return nil
		},
	}
}

// openCatalog opens the catalog in the --db-dir directory.
// Commands that only read pass create=false so a missing catalog is reported
// instead of silently created.
func openCatalog(cmd *cobra.Command, create bool) (*database.Catalog, error) {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}

	catalog, err := database.Open(dbDir, database.Options{CreateIfNotExists: create, EnableWAL: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open wordlist catalog: %w", err)
	}
	return catalog, nil
}

// bitsPerWord is the entropy one word drawn from a list of n words adds.
func bitsPerWord(n int) float64 {
	return entropy.Estimate(entropy.ModeWords, 1, n).BitsPerSymbol
}
