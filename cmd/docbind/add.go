package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/arthur-debert/docbind/store"
	"github.com/arthur-debert/docbind/types"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <json-fields>",
	Short: "Add a record to the store",
	Long: `Add stores a new record. The argument is a JSON object holding the
record's fields, e.g. '{"name": "Alice", "status": "active"}'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := requireStore()
		if err != nil {
			return err
		}

		var fields map[string]interface{}
		if err := json.Unmarshal([]byte(args[0]), &fields); err != nil {
			return fmt.Errorf("invalid fields JSON: %w", err)
		}

		s, err := store.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		id, err := s.Add(types.Normalize(fields).(types.Document))
		if err != nil {
			return err
		}

		slog.Info("record added", "uuid", id, "store", path)
		return printResult(map[string]string{"uuid": id})
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
