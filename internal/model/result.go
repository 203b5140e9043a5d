package model

// ResultRow is one emitted observation: one segment of one simulation at one
// projection year. Rows are immutable once emitted.
type ResultRow struct {
	Sim     int    `json:"sim"`
	Year    int    `json:"year"`
	Segment string `json:"segment"`

	AccountsSurvived float64 `json:"accounts_survived"`
	Revenue          float64 `json:"revenue"`
	Cost             float64 `json:"cost"`
	NetProfit        float64 `json:"net_profit"`
}
