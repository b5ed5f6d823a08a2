package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules/billing"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules/kanban"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

type paidRow struct {
	Amount    float64
	CreatedAt time.Time
}

type columnCount struct {
	BoardColumn string
	N           int64
}

// Summary aggregates invoices created within r and the task board. All reads
// share one transaction; any failure aborts the whole report.
func (s *ReportService) Summary(ctx context.Context, r Range) (*Summary, error) {
	out := &Summary{Range: r, DailyRevenue: []DailyRevenue{}}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var paid []paidRow
		if err := tx.Model(&billing.Invoice{}).
			Select("amount, created_at").
			Where("status = ? AND created_at BETWEEN ? AND ?", billing.StatusPaid, r.Start, r.End).
			Scan(&paid).Error; err != nil {
			return fmt.Errorf("paid invoices: %w", err)
		}

		var unpaid []float64
		if err := tx.Model(&billing.Invoice{}).
			Where("status IN ? AND created_at BETWEEN ? AND ?",
				[]string{billing.StatusPending, billing.StatusUnpaid}, r.Start, r.End).
			Pluck("amount", &unpaid).Error; err != nil {
			return fmt.Errorf("unpaid invoices: %w", err)
		}

		var overdue []float64
		if err := tx.Model(&billing.Invoice{}).
			Where("status = ? AND created_at BETWEEN ? AND ?", billing.StatusOverdue, r.Start, r.End).
			Pluck("amount", &overdue).Error; err != nil {
			return fmt.Errorf("overdue invoices: %w", err)
		}

		var counts []columnCount
		if err := tx.Model(&kanban.Task{}).
			Select("board_column, COUNT(*) AS n").
			Group("board_column").
			Scan(&counts).Error; err != nil {
			return fmt.Errorf("task counts: %w", err)
		}

		total, daily := rollupPaid(paid)
		out.TotalRevenue = total
		out.DailyRevenue = daily
		out.UnpaidInvoices = sum(unpaid)
		out.OverdueInvoices = sum(overdue)
		for _, c := range counts {
			switch c.BoardColumn {
			case kanban.ColumnTodo:
				out.Tasks.Todo = c.N
			case kanban.ColumnInProgress:
				out.Tasks.InProgress = c.N
			case kanban.ColumnDone:
				out.Tasks.Done = c.N
			}
		}
		out.PendingTasks = out.Tasks.Todo + out.Tasks.InProgress
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("report summary: %w", err)
	}
	return out, nil
}

// rollupPaid buckets paid rows by UTC day and derives the total from the
// rounded buckets, so the daily amounts always add up to it.
func rollupPaid(rows []paidRow) (float64, []DailyRevenue) {
	byDay := make(map[string]decimal.Decimal)
	for _, r := range rows {
		day := r.CreatedAt.UTC().Format(dto.DateLayout)
		byDay[day] = byDay[day].Add(decimal.NewFromFloat(r.Amount))
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)

	total := decimal.Zero
	daily := make([]DailyRevenue, 0, len(days))
	for _, d := range days {
		amt := byDay[d].Round(2)
		total = total.Add(amt)
		daily = append(daily, DailyRevenue{Date: d, Amount: amt.InexactFloat64()})
	}
	return total.InexactFloat64(), daily
}

func sum(amounts []float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.Round(2).InexactFloat64()
}
