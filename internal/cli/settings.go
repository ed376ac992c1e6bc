package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/index/internal/logger"
	"github.com/MrSnakeDoc/index/internal/settings"
	"github.com/MrSnakeDoc/index/internal/store/bolt"
	"github.com/MrSnakeDoc/index/internal/utils"
)

func newSettingsCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Export, import and inspect stored settings (bolt store)",
	}
	cmd.PersistentFlags().StringVarP(&dbPath, "db", "d", defaultBoltPath(), "path to the bbolt database file")

	// withService opens the store for the duration of fn.
	withService := func(fn func(svc *settings.Service) error) error {
		db, err := bolt.Open(dbPath)
		if err != nil {
			return err
		}
		log := logger.Nop()
		defer utils.CloseLogged(db, log, "store")
		return fn(settings.NewService(db, log, settings.Options{}))
	}

	var output string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write every stored setting as one JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(func(svc *settings.Service) error {
				doc, err := svc.Export(cmd.Context())
				if err != nil {
					return err
				}
				var buf bytes.Buffer
				if err := printJSON(&buf, doc); err != nil {
					return err
				}
				return writeOutput(cmd, output, buf.Bytes())
			})
		},
	}
	export.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	importCmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Load settings from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer in.Close()
			return withService(func(svc *settings.Service) error {
				keys, err := svc.Import(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d keys: %s\n", len(keys), strings.Join(keys, ", "))
				return nil
			})
		},
	}

	get := &cobra.Command{
		Use:       "get <key>",
		Short:     "Print one setting",
		Args:      cobra.ExactArgs(1),
		ValidArgs: settings.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(func(svc *settings.Service) error {
				raw, err := svc.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(raw))
				return nil
			})
		},
	}

	set := &cobra.Command{
		Use:     "set <key> <json>",
		Short:   "Store one setting",
		Example: `  index settings set theme '"dark"'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(func(svc *settings.Service) error {
				return svc.Set(cmd.Context(), args[0], json.RawMessage(args[1]))
			})
		},
	}

	cmd.AddCommand(export, importCmd, get, set)
	return cmd
}

func defaultBoltPath() string {
	if p := os.Getenv("INDEX_BOLT_PATH"); p != "" {
		return p
	}
	return "/data/index.db"
}
