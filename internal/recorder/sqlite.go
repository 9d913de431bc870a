package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"DipSentry/internal/model"
)

// SQLiteRecorder persists trades, per-tick equity, and backtest results to a
// SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so analysis tools can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trades (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			side            TEXT NOT NULL,
			basket_id       INTEGER NOT NULL,
			price           REAL,
			quantity        REAL,
			amount          REAL,
			realized_profit REAL,
			fear_greed      INTEGER,
			dip_magnitude   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_ts ON trades(timestamp)`,

		`CREATE TABLE IF NOT EXISTS ticks (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			price           REAL,
			fear_greed      INTEGER,
			portfolio_value REAL,
			fiat_balance    REAL,
			open_baskets    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ticks_ts ON ticks(timestamp)`,

		`CREATE TABLE IF NOT EXISTS backtest_results (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at           INTEGER NOT NULL,
			period_days          INTEGER,
			start_date           INTEGER,
			end_date             INTEGER,
			initial_value        REAL,
			final_value          REAL,
			total_return_percent REAL,
			total_trades         INTEGER,
			profitable_trades    INTEGER,
			win_rate             REAL,
			max_drawdown_percent REAL,
			config_json          TEXT
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTrade(evt *model.TradeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO trades
		(timestamp, side, basket_id, price, quantity, amount, realized_profit, fear_greed, dip_magnitude)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		evt.Timestamp.Unix(), string(evt.Side), evt.BasketID,
		evt.Price, evt.Quantity, evt.Amount, evt.RealizedProfit,
		evt.FearGreed, evt.DipMagnitude,
	)
	return err
}

func (r *SQLiteRecorder) RecordTick(rec *TickRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO ticks
		(timestamp, price, fear_greed, portfolio_value, fiat_balance, open_baskets)
		VALUES (?,?,?,?,?,?)`,
		rec.Timestamp.Unix(), rec.Price, rec.FearGreed,
		rec.PortfolioValue, rec.FiatBalance, rec.OpenBaskets,
	)
	return err
}

func (r *SQLiteRecorder) RecordBacktestResult(res *model.BacktestResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	configJSON, err := json.Marshal(res.ConfigUsed)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = r.db.Exec(`INSERT INTO backtest_results
		(created_at, period_days, start_date, end_date, initial_value, final_value,
		 total_return_percent, total_trades, profitable_trades, win_rate,
		 max_drawdown_percent, config_json)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), res.PeriodDays,
		res.StartDate.Unix(), res.EndDate.Unix(),
		res.InitialPortfolioValue, res.FinalPortfolioValue,
		res.TotalReturnPercent, res.TotalTrades, res.ProfitableTrades,
		res.WinRate, res.MaxDrawdownPercent, string(configJSON),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
