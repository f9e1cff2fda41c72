package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS expenses (
    id                   TEXT PRIMARY KEY,
    amount               REAL NOT NULL,
    date                 TEXT NOT NULL,
    category             TEXT NOT NULL,
    notes                TEXT NOT NULL DEFAULT '',
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS category_budgets (
    category             TEXT PRIMARY KEY,
    amount               REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key                  TEXT PRIMARY KEY,
    value                TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS exchange_rates (
    code                 TEXT PRIMARY KEY,
    rate                 REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS calc_history (
    position             INTEGER PRIMARY KEY,
    entry                TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);
CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category);
`

// Keys in the settings table.
const (
	keyMonthlyBudget = "monthly_budget"
	keyCurrency      = "currency"
	keyRatesBase     = "rates_base"
	keyRatesUpdated  = "rates_updated"
)
