package model

// DefaultMonthlyBudget applies until the user sets one.
const DefaultMonthlyBudget = 1000.0

// CategoryBudgets holds per-category limits. A missing or zero entry
// means no limit.
type CategoryBudgets map[Category]float64

// AlertLevel says how close spending is to a limit.
type AlertLevel int

const (
	AlertApproaching AlertLevel = iota + 1 // crossed 90%
	AlertExceeded                          // crossed 100%
)

// BudgetAlert is raised when a change pushes spending across a threshold.
// Category is empty for the overall budget.
type BudgetAlert struct {
	Level    AlertLevel
	Category Category
	Spent    float64
	Budget   float64
}

// Message renders the alert for the user.
func (a BudgetAlert) Message() string {
	if a.Category == "" {
		if a.Level == AlertExceeded {
			return "Warning: You have exceeded your overall budget!"
		}
		return "Warning: You have used over 90% of your overall budget."
	}
	if a.Level == AlertExceeded {
		return `Warning: You have exceeded your budget for the "` + string(a.Category) + `" category!`
	}
	return `Warning: You are approaching your budget limit for the "` + string(a.Category) + `" category.`
}

// BudgetStats holds budget tracking and forecast data for the current month.
type BudgetStats struct {
	MonthlyBudget     float64
	CurrentSpend      float64
	DailyBurnRate     float64
	ProjectedMonthly  float64
	DaysRemaining     int
	BudgetUsedPercent float64
}

// CategoryProgress is spending against one category budget.
type CategoryProgress struct {
	Category Category
	Spent    float64
	Budget   float64
	Percent  float64 // 0 when Budget is 0
}
