package dto_test

import (
	"net/http"
	"net/url"
	"testing"

	"hotelier/shared/constant"
	"hotelier/shared/dto"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name: "equality with table prefix",
			filter: dto.Filter{
				Field:    "room_id",
				Value:    "abc",
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
			wantWhere: "bookings.room_id = :room_id",
			wantArgs:  map[string]any{"room_id": "abc"},
		},
		{
			name: "like wraps with wildcards",
			filter: dto.Filter{
				Field:    "name",
				Value:    "sui",
				Operator: dto.FilterOperatorLike,
				Table:    "rooms",
			},
			wantWhere: "LOWER(rooms.name) LIKE LOWER(:name) ",
			wantArgs:  map[string]any{"name": "%sui%"},
		},
		{
			name: "in expands slice values",
			filter: dto.Filter{
				Field:    "room_id",
				Value:    []string{"a", "b"},
				Operator: dto.FilterOperatorIn,
			},
			wantWhere: "room_id IN (:room_id_0, :room_id_1) ",
			wantArgs:  map[string]any{"room_id_0": "a", "room_id_1": "b"},
		},
		{
			name: "less-or-equal with custom arg name",
			filter: dto.Filter{
				ArgName:  "range_end",
				Field:    "start_date",
				Value:    "2026-09-10",
				Operator: dto.FilterOperatorLessEq,
				Table:    "bookings",
			},
			wantWhere: "bookings.start_date <= :range_end",
			wantArgs:  map[string]any{"range_end": "2026-09-10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			if where != tt.wantWhere {
				t.Errorf("expected where %q, got %q", tt.wantWhere, where)
			}

			if len(args) != len(tt.wantArgs) {
				t.Fatalf("expected %d args, got %d", len(tt.wantArgs), len(args))
			}

			for key, want := range tt.wantArgs {
				if got, ok := args[key]; !ok || got != want {
					t.Errorf("expected arg %s=%v, got %v", key, want, got)
				}
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "has_minibar", Value: true, Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "room_size", Value: "SUITE", Operator: dto.FilterOperatorEq},
		},
	}

	where, args := group.GetWhereClause()

	if where != "(has_minibar = :has_minibar AND room_size = :room_size)" {
		t.Errorf("unexpected where clause: %q", where)
	}

	if len(args) != 2 {
		t.Errorf("expected 2 args, got %d", len(args))
	}
}

func TestFilterGroup_EmptyYieldsEmptyClause(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	where, args := group.GetWhereClause()
	if where != "" {
		t.Errorf("expected empty where clause, got %q", where)
	}

	if len(args) != 0 {
		t.Errorf("expected no args, got %d", len(args))
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "name",
				"sort_dir": "asc",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "name",
				SortDir: "ASC",
			},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "invalid numbers are ignored",
			queryParams: map[string]string{
				"page":  "zero",
				"limit": "-3",
			},
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for key, value := range tt.queryParams {
				values.Set(key, value)
			}

			req := &http.Request{URL: &url.URL{RawQuery: values.Encode()}}

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			if params != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, params)
			}
		})
	}
}
