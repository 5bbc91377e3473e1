package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/tidewater-labs/newswire/internal/db"
)

// Aggregate runs a single-field bucket aggregation via FT.AGGREGATE:
// GROUPBY on one field with a COUNT reducer, optionally sorted and limited.
func (s *Store) Aggregate(ctx context.Context, q *db.AggregateQuery) ([]db.AggregateRow, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.GroupBy == "" {
		return nil, fmt.Errorf("group-by field is required")
	}

	query := q.Query
	if query == "" {
		query = "*"
	}

	args := []string{
		q.IndexName, query,
		"GROUPBY", "1", q.GroupBy,
		"REDUCE", "COUNT", "0", "AS", "count",
	}

	if q.SortBy != "" {
		order := "ASC"
		if q.SortDesc {
			order = "DESC"
		}
		args = append(args, "SORTBY", "2", q.SortBy, order)
	}

	if q.Limit > 0 {
		args = append(args, "LIMIT", "0", strconv.Itoa(q.Limit))
	}

	args = append(args, "DIALECT", "2")

	cmd := s.b().Arbitrary("FT.AGGREGATE").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}

	return parseAggregateResult(raw), nil
}

// parseAggregateResult parses the RESP2 shape [total, row1, row2, ...] where
// each row is a flat array of field/value pairs.
func parseAggregateResult(raw []rueidis.RedisMessage) []db.AggregateRow {
	if len(raw) < 2 {
		return nil
	}

	rows := make([]db.AggregateRow, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		pairs, err := raw[i].ToArray()
		if err != nil {
			continue
		}
		rows = append(rows, db.AggregateRow(parseFieldPairs(pairs)))
	}
	return rows
}
