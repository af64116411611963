package experimentservice

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trialgate/trialgate/trialtypes"
)

func TestCountExperiments(t *testing.T) {
	ctx := context.Background()

	t.Run("total field on first probe", func(t *testing.T) {
		api := &mockAPI{
			getExperiments: func(ctx context.Context, filter *trialtypes.FilterNode, sort map[string]string, page, pageSize int) (any, error) {
				require.Equal(t, 0, page)
				require.Equal(t, 1, pageSize)
				return map[string]any{"total": float64(123), "data": []any{}}, nil
			},
		}

		result, err := New(api).CountExperiments(ctx, nil)
		require.NoError(t, err)
		require.Equal(t, "123", result.TotalExperiments)
		require.Equal(t, "3", result.TotalPages)
		require.Equal(t, 50, result.ExperimentsPerPage)
		require.Contains(t, result.PaginationInfo, "(0 to 2)")
	})

	t.Run("nested pagination fields", func(t *testing.T) {
		payloads := []map[string]any{
			{"pagination": map[string]any{"totalCount": float64(75)}},
			{"_pagination": map[string]any{"count": float64(75)}},
			{"meta": map[string]any{"total": float64(75)}},
			{"totalElements": float64(75)},
		}
		for _, payload := range payloads {
			api := &mockAPI{
				getExperiments: func(ctx context.Context, filter *trialtypes.FilterNode, sort map[string]string, page, pageSize int) (any, error) {
					return payload, nil
				},
			}
			result, err := New(api).CountExperiments(ctx, nil)
			require.NoError(t, err)
			require.Equal(t, "75", result.TotalExperiments)
			require.Equal(t, "2", result.TotalPages)
		}
	})

	t.Run("retries probe on larger page", func(t *testing.T) {
		api := &mockAPI{
			getExperiments: func(ctx context.Context, filter *trialtypes.FilterNode, sort map[string]string, page, pageSize int) (any, error) {
				if pageSize == 1 {
					return map[string]any{"data": []any{map[string]any{}}}, nil
				}
				return map[string]any{"count": float64(200), "data": []any{}}, nil
			},
		}
		result, err := New(api).CountExperiments(ctx, nil)
		require.NoError(t, err)
		require.Equal(t, "200", result.TotalExperiments)
	})

	t.Run("pagination fallback counts exactly", func(t *testing.T) {
		// Two full pages then a short one: 100 + 100 + 30 = 230.
		api := &mockAPI{
			getExperiments: func(ctx context.Context, filter *trialtypes.FilterNode, sort map[string]string, page, pageSize int) (any, error) {
				if pageSize == 1 {
					return map[string]any{"data": []any{map[string]any{}}}, nil
				}
				n := pageSize
				if page == 2 {
					n = 30
				}
				if page > 2 {
					n = 0
				}
				return map[string]any{"data": makeRecords(n)}, nil
			},
		}
		result, err := New(api).CountExperiments(ctx, nil)
		require.NoError(t, err)
		require.Equal(t, "230", result.TotalExperiments)
		require.Equal(t, "5", result.TotalPages)
	})

	t.Run("page ceiling reports lower bound", func(t *testing.T) {
		api := &mockAPI{
			getExperiments: func(ctx context.Context, filter *trialtypes.FilterNode, sort map[string]string, page, pageSize int) (any, error) {
				if pageSize == 1 {
					return map[string]any{"data": []any{map[string]any{}}}, nil
				}
				return map[string]any{"data": makeRecords(pageSize)}, nil
			},
		}
		result, err := New(api).CountExperiments(ctx, nil)
		require.NoError(t, err)
		require.Equal(t, "5100+", result.TotalExperiments)
		require.Equal(t, "Many", result.TotalPages)
		require.Contains(t, result.PaginationInfo, "5100+")
	})

	t.Run("first fetch failure surfaces", func(t *testing.T) {
		_, err := New(&mockAPI{}).CountExperiments(ctx, nil)
		require.Error(t, err)
	})

	t.Run("zero total is not a valid probe hit", func(t *testing.T) {
		calls := 0
		api := &mockAPI{
			getExperiments: func(ctx context.Context, filter *trialtypes.FilterNode, sort map[string]string, page, pageSize int) (any, error) {
				calls++
				return map[string]any{"total": float64(0), "data": []any{}}, nil
			},
		}
		result, err := New(api).CountExperiments(ctx, nil)
		require.NoError(t, err)
		require.Equal(t, "0", result.TotalExperiments)
		// probe, probe retry, then one pagination page
		require.Equal(t, 3, calls)
	})
}

func makeRecords(n int) []any {
	records := make([]any, n)
	for i := range records {
		records[i] = map[string]any{"_id": fmt.Sprintf("id-%d", i)}
	}
	return records
}
