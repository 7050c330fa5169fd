package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"momo-analysis/internal/models"
)

// GetStats агрегированная статистика по всем транзакциям
func (s *SQLiteStorage) GetStats(ctx context.Context) (*models.Stats, error) {
	stats := &models.Stats{
		TypeDistribution: make([]models.TypeCount, 0),
		MonthlyVolume:    make([]models.MonthlyVolume, 0),
	}

	var successCount int64
	err := s.DB.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CAST(amount AS NUMERIC)), 0),
			COALESCE(SUM(CAST(fee AS NUMERIC)), 0),
			COALESCE(SUM(CASE WHEN status = 'SUCCESS' THEN 1 ELSE 0 END), 0)
		FROM transactions
	`).Scan(&stats.TotalTransactions, &stats.TotalVolume, &stats.TotalFees, &successCount)
	if err != nil {
		return nil, fmt.Errorf("failed to get totals: %w", err)
	}

	if stats.TotalTransactions > 0 {
		count := decimal.NewFromInt(stats.TotalTransactions)
		stats.AverageAmount = stats.TotalVolume.DivRound(count, 2)
		stats.SuccessRate = int(decimal.NewFromInt(successCount * 100).DivRound(count, 0).IntPart())
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT tt.type_name, COUNT(t.id) AS cnt
		FROM transactions t
		JOIN transaction_types tt ON tt.id = t.type_id
		GROUP BY tt.id, tt.type_name
		ORDER BY cnt DESC, tt.type_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get type distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tc models.TypeCount
		if err := rows.Scan(&tc.TypeName, &tc.Count); err != nil {
			return nil, err
		}
		stats.TypeDistribution = append(stats.TypeDistribution, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	monthRows, err := s.DB.QueryContext(ctx, `
		SELECT substr(transaction_date, 1, 7) AS month, COALESCE(SUM(CAST(amount AS NUMERIC)), 0)
		FROM transactions
		GROUP BY month
		ORDER BY month
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly volume: %w", err)
	}
	defer monthRows.Close()

	for monthRows.Next() {
		var mv models.MonthlyVolume
		if err := monthRows.Scan(&mv.Month, &mv.Amount); err != nil {
			return nil, err
		}
		stats.MonthlyVolume = append(stats.MonthlyVolume, mv)
	}

	return stats, monthRows.Err()
}
