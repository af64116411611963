package experimentservice

import (
	"context"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/trialgate/trialgate/trialtypes"
)

const (
	countPageSize = 100
	// maxCountPages bounds the pagination fallback; past it the count is
	// reported as a lower bound.
	maxCountPages = 50
)

// totalCountPaths is the single ordered list of known total-count field
// locations, tried in order; the first structurally valid positive number
// wins.
var totalCountPaths = []string{
	"$.total",
	"$.totalCount",
	"$.count",
	"$.pagination.total",
	"$.pagination.totalCount",
	"$.pagination.count",
	"$._pagination.total",
	"$._pagination.totalCount",
	"$._pagination.count",
	"$.meta.total",
	"$.meta.totalCount",
	"$.meta.count",
	"$.totalElements",
	"$.totalItems",
}

// CountResult reports the discovered experiment total. Total and TotalPages
// are strings ("123", "123+", "Many") so lower-bound results keep their
// suffix.
type CountResult struct {
	TotalExperiments   string `json:"total_experiments"`
	TotalPages         string `json:"total_pages"`
	ExperimentsPerPage int    `json:"experiments_per_page"`
	PaginationInfo     string `json:"pagination_info"`
}

// CountExperiments resolves the number of experiments matching the filter.
// It probes the known total-count field paths on a one-record page, retries
// the probes on a full page, and finally counts by paginating with a hard
// page ceiling.
func (s *service) CountExperiments(ctx context.Context, filter *trialtypes.FilterNode) (*CountResult, error) {
	sort := map[string]string{"name": "asc"}

	resp, err := s.api.GetExperiments(ctx, filter, sort, 0, 1)
	if err != nil {
		return nil, err
	}

	total, found := probeTotalCount(resp)
	if !found {
		// Some deployments only include the total on larger pages.
		larger, err := s.api.GetExperiments(ctx, filter, sort, 0, countPageSize)
		if err == nil {
			total, found = probeTotalCount(larger)
		}
	}

	exact := true
	if !found {
		var counted int
		counted, exact = s.countByPagination(ctx, filter, sort)
		total = counted
	}

	result := &CountResult{ExperimentsPerPage: 50}
	if exact {
		totalPages := (total + 49) / 50
		result.TotalExperiments = fmt.Sprintf("%d", total)
		result.TotalPages = fmt.Sprintf("%d", totalPages)
		result.PaginationInfo = fmt.Sprintf("Use get_all_experiments with page parameter (0 to %d) to get all experiments", totalPages-1)
	} else {
		result.TotalExperiments = fmt.Sprintf("%d+", total)
		result.TotalPages = "Many"
		result.PaginationInfo = fmt.Sprintf("Use get_all_experiments with page parameter (0, 1, 2, etc.) to get all experiments. There are %d+ experiments.", total)
	}
	return result, nil
}

// probeTotalCount tries each known path in order and returns the first
// positive numeric match.
func probeTotalCount(resp any) (int, bool) {
	for _, path := range totalCountPaths {
		value, err := jsonpath.Get(path, resp)
		if err != nil || value == nil {
			continue
		}
		if n, ok := value.(float64); ok && n > 0 {
			return int(n), true
		}
	}
	return 0, false
}

// countByPagination walks pages of 100 until a short page. The second return
// is false when the page ceiling was hit, meaning the count is a lower bound.
func (s *service) countByPagination(ctx context.Context, filter *trialtypes.FilterNode, sort map[string]string) (int, bool) {
	total := 0
	for page := 0; ; page++ {
		if page > maxCountPages {
			return total, false
		}
		resp, err := s.api.GetExperiments(ctx, filter, sort, page, countPageSize)
		if err != nil {
			return total, true
		}
		records := experimentRecords(resp)
		if len(records) == 0 {
			return total, true
		}
		total += len(records)
		if len(records) < countPageSize {
			return total, true
		}
	}
}

// experimentRecords pulls the record list out of a paginated experiment
// response.
func experimentRecords(resp any) []any {
	body, ok := resp.(map[string]any)
	if !ok {
		return nil
	}
	records, _ := body["data"].([]any)
	return records
}
