package reports

import "time"

type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type TaskCounts struct {
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"inProgress"`
	Done       int64 `json:"done"`
}

type DailyRevenue struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type Summary struct {
	Range           Range          `json:"range"`
	TotalRevenue    float64        `json:"totalRevenue"`
	UnpaidInvoices  float64        `json:"unpaidInvoices"`
	OverdueInvoices float64        `json:"overdueInvoices"`
	PendingTasks    int64          `json:"pendingTasks"`
	Tasks           TaskCounts     `json:"tasks"`
	DailyRevenue    []DailyRevenue `json:"dailyRevenue"`
}
