package main

import (
	"encoding/json"
	"fmt"

	"github.com/arthur-debert/docbind/docbind"
	"github.com/spf13/cobra"
)

var convertTypeKey string

var convertCmd = &cobra.Command{
	Use:   "convert <json-value>",
	Short: "Show how a value converts for query binding",
	Long: `Convert runs a JSON value through the store writer and prints the
converted result with type metadata stripped. Useful for inspecting what a
parameter will look like once bound into a query.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var value interface{}
		if err := json.Unmarshal([]byte(args[0]), &value); err != nil {
			return fmt.Errorf("invalid value JSON: %w", err)
		}

		writer := docbind.NewStructWriterWithKey(convertTypeKey)
		converted, err := docbind.Convert(writer, value)
		if err != nil {
			return err
		}

		return printResult(converted)
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertTypeKey, "type-key", docbind.DefaultTypeKey, "Type discriminator key to strip")
	rootCmd.AddCommand(convertCmd)
}
