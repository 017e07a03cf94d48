package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arthur-debert/docbind/docbind"
	"github.com/arthur-debert/docbind/query"
	"github.com/arthur-debert/docbind/store"
	"github.com/arthur-debert/docbind/types"
	"github.com/spf13/cobra"
)

var (
	findWhere        []string
	findParams       []string
	findSort         []string
	findLimit        int
	findOffset       int
	findMaxDistance  float64
	findDistanceUnit string
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find records matching bound conditions",
	Long: `Find binds parameter values into query conditions and returns the
matching records. Each --param is a JSON value; each --where condition is
field=op:position, where position indexes into the parameter list.

Parameters are converted to the store's native representation before
binding, with any embedded type metadata stripped.

Examples:
  docbind find --where status=eq:0 --param '"active"'
  docbind find --where age=gte:0 --param 21 --sort -age --limit 10
  docbind find --where location=near:0 --param '[2.5, 4.1]' --max-distance 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := requireStore()
		if err != nil {
			return err
		}

		conditions := make([]query.Condition, 0, len(findWhere))
		for _, w := range findWhere {
			cond, err := query.ParseCondition(w)
			if err != nil {
				return err
			}
			conditions = append(conditions, cond)
		}

		values := make([]interface{}, 0, len(findParams))
		for i, p := range findParams {
			var v interface{}
			if err := json.Unmarshal([]byte(p), &v); err != nil {
				return fmt.Errorf("invalid parameter %d: %w", i, err)
			}
			values = append(values, v)
		}

		opts := buildListOptions()
		accessor := docbind.NewConvertingParameterAccessor(
			docbind.NewStructWriter(),
			docbind.NewParameterList(values, opts...),
		)

		q, err := query.Bind(accessor, conditions)
		if err != nil {
			return err
		}

		s, err := store.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		records, err := s.Find(q)
		if err != nil {
			return err
		}

		slog.Debug("query executed", "conditions", len(conditions), "matches", len(records))
		return printResult(records)
	},
}

// buildListOptions translates the find flags into parameter list options.
func buildListOptions() []docbind.ParameterListOption {
	var opts []docbind.ParameterListOption

	if findLimit > 0 || findOffset > 0 {
		opts = append(opts, docbind.WithPageable(types.Pageable{
			Offset: findOffset,
			Limit:  findLimit,
		}))
	}

	if len(findSort) > 0 {
		var s types.Sort
		for _, field := range findSort {
			clause := types.OrderClause{Field: field}
			if strings.HasPrefix(field, "-") {
				clause.Field = field[1:]
				clause.Descending = true
			}
			s = append(s, clause)
		}
		opts = append(opts, docbind.WithSort(s))
	}

	if findMaxDistance > 0 {
		opts = append(opts, docbind.WithMaxDistance(types.Distance{
			Value: findMaxDistance,
			Unit:  types.DistanceUnit(findDistanceUnit),
		}))
	}

	return opts
}

func init() {
	findCmd.Flags().StringArrayVar(&findWhere, "where", nil, "Condition as field=op:position (repeatable)")
	findCmd.Flags().StringArrayVar(&findParams, "param", nil, "Parameter value as JSON (repeatable, position order)")
	findCmd.Flags().StringArrayVar(&findSort, "sort", nil, "Sort field, prefix with - for descending (repeatable)")
	findCmd.Flags().IntVar(&findLimit, "limit", 0, "Maximum number of results")
	findCmd.Flags().IntVar(&findOffset, "offset", 0, "Number of results to skip")
	findCmd.Flags().Float64Var(&findMaxDistance, "max-distance", 0, "Maximum distance for near conditions")
	findCmd.Flags().StringVar(&findDistanceUnit, "distance-unit", string(types.Kilometers), "Distance unit: km|mi")
	rootCmd.AddCommand(findCmd)
}
