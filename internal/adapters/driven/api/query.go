package api

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// encodeQuery renders a url-tagged filter struct. Values of "all" mean no
// constraint and are dropped along with empty values.
func encodeQuery(v any) (url.Values, error) {
	values, err := query.Values(v)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	for key, vals := range values {
		kept := vals[:0]
		for _, s := range vals {
			s = strings.TrimSpace(s)
			if s == "" || strings.EqualFold(s, domain.FilterAll) {
				continue
			}
			kept = append(kept, s)
		}
		if len(kept) == 0 {
			values.Del(key)
			continue
		}
		values[key] = kept
	}
	return values, nil
}

// analyticsPeriods maps client date ranges to server periods.
var analyticsPeriods = map[string]string{
	"7d":   "week",
	"30d":  "month",
	"90d":  "quarter",
	"1y":   "year",
	"365d": "year",
}

// analyticsPeriod returns the server period for a client date range.
func analyticsPeriod(dateRange string) string {
	if p, ok := analyticsPeriods[dateRange]; ok {
		return p
	}
	return dateRange
}
