package store

import (
	"context"
	"fmt"
)

// ReadAll returns every log row as a generic column-name-keyed map,
// ordered by seq ascending so later rows shadow earlier ones under a
// latest-wins policy. Reading through rows.Columns() keeps the result
// schema-agnostic: columns added after a row was written simply appear
// as nil, and columns this binary does not know about still come back.
//
// The log is bounded by participants x items, so a full scan per
// progress query is acceptable.
func (s *Store) ReadAll(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM judgments ORDER BY seq ASC")
	if err != nil {
		return nil, fmt.Errorf("query judgments: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("judgment columns: %w", err)
	}

	var out []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan judgment row: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate judgments: %w", err)
	}

	if out == nil {
		out = []map[string]any{}
	}
	return out, nil
}
