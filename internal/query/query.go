// Package query implements the dynamic listing contract shared by every
// paginated collection: filter, then sort, then paginate. The same Spec
// drives both in-memory slices and SQL SELECT statements.
package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

var (
	ErrInvalidSortField = errors.New("unknown sort field")
	ErrInvalidPage      = errors.New("page and page size must be >= 1")
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// Spec captures the raw listing parameters supplied by a caller.
type Spec struct {
	Search     string
	SortField  string
	Descending bool
	Page       int
	PageSize   int
}

// Normalize applies defaults for omitted page parameters and rejects
// out-of-range values. Zero means "not supplied"; explicit values below 1
// are a caller error, not something to silently clamp.
func (s Spec) Normalize() (Spec, error) {
	if s.Page == 0 {
		s.Page = defaultPage
	}
	if s.PageSize == 0 {
		s.PageSize = defaultPageSize
	}
	if s.Page < 1 || s.PageSize < 1 {
		return Spec{}, ErrInvalidPage
	}
	return s, nil
}

// Fields maps external sort-field names to accessors over T. The Filter
// accessor selects the value matched by Search.
type Fields[T any] struct {
	Filter func(T) string
	Sort   map[string]func(T) string
}

// Apply filters, sorts and paginates records in that order. Search is a
// case-sensitive substring match. A page past the end of the data yields an
// empty slice.
func Apply[T any](records []T, spec Spec, fields Fields[T]) ([]T, error) {
	spec, err := spec.Normalize()
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(records))
	if spec.Search != "" && fields.Filter != nil {
		for _, rec := range records {
			if strings.Contains(fields.Filter(rec), spec.Search) {
				out = append(out, rec)
			}
		}
	} else {
		out = append(out, records...)
	}

	if spec.SortField != "" {
		accessor, ok := fields.Sort[spec.SortField]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSortField, spec.SortField)
		}
		sort.SliceStable(out, func(i, j int) bool {
			if spec.Descending {
				return accessor(out[i]) > accessor(out[j])
			}
			return accessor(out[i]) < accessor(out[j])
		})
	}

	offset := (spec.Page - 1) * spec.PageSize
	if offset >= len(out) {
		return []T{}, nil
	}
	end := offset + spec.PageSize
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

// ApplyToSelect expresses the same contract as SQL. Only columns present in
// the allowed map are sortable; searchColumn receives the substring filter.
func ApplyToSelect(builder sq.SelectBuilder, spec Spec, searchColumn string, allowed map[string]string) (sq.SelectBuilder, error) {
	spec, err := spec.Normalize()
	if err != nil {
		return builder, err
	}

	if spec.Search != "" && searchColumn != "" {
		builder = builder.Where(sq.Like{searchColumn: "%" + spec.Search + "%"})
	}

	if spec.SortField != "" {
		column, ok := allowed[spec.SortField]
		if !ok {
			return builder, fmt.Errorf("%w: %s", ErrInvalidSortField, spec.SortField)
		}
		direction := "ASC"
		if spec.Descending {
			direction = "DESC"
		}
		builder = builder.OrderBy(fmt.Sprintf("%s %s", column, direction))
	}

	offset := uint64(spec.Page-1) * uint64(spec.PageSize)
	return builder.Limit(uint64(spec.PageSize)).Offset(offset), nil
}
