package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

// CheckoutRunRepository persists the checkout-run journal. Bookings created by
// a run that aborted mid-sequence are never rolled back; the journal keeps
// them visible as ORPHANED for operators to reconcile.
type CheckoutRunRepository struct {
	DB *sql.DB
}

func (r CheckoutRunRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r CheckoutRunRepository) runsTable() string  { return "checkout_runs" }
func (r CheckoutRunRepository) itemsTable() string { return "checkout_run_items" }

// EnsureSchema creates the journal tables when missing. Called once at boot.
func (r CheckoutRunRepository) EnsureSchema() error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not connected")
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS ` + r.runsTable() + ` (
			id          VARCHAR(36) PRIMARY KEY,
			user_id     BIGINT NOT NULL,
			kind        VARCHAR(16) NOT NULL,
			percentage  DOUBLE NOT NULL DEFAULT 0,
			status      VARCHAR(16) NOT NULL,
			failed_step VARCHAR(32) NOT NULL DEFAULT '',
			failed_item INT NOT NULL DEFAULT 0,
			created_at  DATETIME NOT NULL,
			finished_at DATETIME NULL
		)`); err != nil {
		return err
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS ` + r.itemsTable() + ` (
			run_id      VARCHAR(36) NOT NULL,
			item_index  INT NOT NULL,
			package_id  BIGINT NOT NULL DEFAULT 0,
			booking_id  BIGINT NOT NULL DEFAULT 0,
			amount_due  BIGINT NOT NULL DEFAULT 0,
			amount_paid BIGINT NOT NULL DEFAULT 0,
			state       VARCHAR(24) NOT NULL,
			last_error  TEXT,
			PRIMARY KEY (run_id, item_index)
		)`)
	return err
}

func (r CheckoutRunRepository) CreateRun(run models.CheckoutRun) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not connected")
	}
	_, err := db.Exec(`
		INSERT INTO `+r.runsTable()+` (id, user_id, kind, percentage, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.UserID, run.Kind, run.Percentage, run.Status, run.CreatedAt,
	)
	return err
}

// FinishRun records the terminal status of a run. failedStep/failedItem are
// empty/zero on success.
func (r CheckoutRunRepository) FinishRun(runID, status, failedStep string, failedItem int) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not connected")
	}
	_, err := db.Exec(`
		UPDATE `+r.runsTable()+`
		SET status=?, failed_step=?, failed_item=?, finished_at=NOW()
		WHERE id=?`,
		status, failedStep, failedItem, runID,
	)
	return err
}

func (r CheckoutRunRepository) AddItem(item models.CheckoutRunItem) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not connected")
	}
	_, err := db.Exec(`
		INSERT INTO `+r.itemsTable()+` (run_id, item_index, package_id, booking_id, amount_due, amount_paid, state, last_error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.RunID, item.ItemIndex, item.PackageID, item.BookingID, item.AmountDue, item.AmountPaid, item.State, item.LastError,
	)
	return err
}

// UpdateItemState advances a journal item. booking_id and amount_due are only
// overwritten when non-zero values are supplied, so a later failure never
// wipes what an earlier step recorded.
func (r CheckoutRunRepository) UpdateItemState(runID string, itemIndex int, state string, bookingID, amountDue, amountPaid int64, lastError string) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not connected")
	}
	_, err := db.Exec(`
		UPDATE `+r.itemsTable()+`
		SET state=?,
		    booking_id=CASE WHEN ? > 0 THEN ? ELSE booking_id END,
		    amount_due=CASE WHEN ? > 0 THEN ? ELSE amount_due END,
		    amount_paid=?,
		    last_error=?
		WHERE run_id=? AND item_index=?`,
		state, bookingID, bookingID, amountDue, amountDue, amountPaid, lastError, runID, itemIndex,
	)
	return err
}

func (r CheckoutRunRepository) GetRun(runID string) (models.CheckoutRun, []models.CheckoutRunItem, error) {
	db := r.db()
	if db == nil {
		return models.CheckoutRun{}, nil, fmt.Errorf("database not connected")
	}

	var run models.CheckoutRun
	var finishedAt sql.NullTime
	err := db.QueryRow(`
		SELECT id, user_id, kind, percentage, status,
		       COALESCE(failed_step,''), COALESCE(failed_item,0),
		       created_at, finished_at
		FROM `+r.runsTable()+`
		WHERE id=? LIMIT 1`, runID).Scan(
		&run.ID, &run.UserID, &run.Kind, &run.Percentage, &run.Status,
		&run.FailedStep, &run.FailedItem,
		&run.CreatedAt, &finishedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CheckoutRun{}, nil, domain.NotFoundError{Resource: "checkout run"}
		}
		return models.CheckoutRun{}, nil, err
	}
	if finishedAt.Valid {
		t := finishedAt.Time
		run.FinishedAt = &t
	}

	items, err := r.listItems(runID)
	if err != nil {
		return models.CheckoutRun{}, nil, err
	}
	return run, items, nil
}

func (r CheckoutRunRepository) listItems(runID string) ([]models.CheckoutRunItem, error) {
	rows, err := r.db().Query(`
		SELECT run_id, item_index, package_id, booking_id, amount_due, amount_paid, state, COALESCE(last_error,'')
		FROM `+r.itemsTable()+`
		WHERE run_id=?
		ORDER BY item_index ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CheckoutRunItem{}
	for rows.Next() {
		var it models.CheckoutRunItem
		if err := rows.Scan(&it.RunID, &it.ItemIndex, &it.PackageID, &it.BookingID, &it.AmountDue, &it.AmountPaid, &it.State, &it.LastError); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r CheckoutRunRepository) ListRuns(limit int) ([]models.CheckoutRun, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("database not connected")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT id, user_id, kind, percentage, status,
		       COALESCE(failed_step,''), COALESCE(failed_item,0),
		       created_at, finished_at
		FROM `+r.runsTable()+`
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []models.CheckoutRun{}
	for rows.Next() {
		var run models.CheckoutRun
		var finishedAt sql.NullTime
		if err := rows.Scan(
			&run.ID, &run.UserID, &run.Kind, &run.Percentage, &run.Status,
			&run.FailedStep, &run.FailedItem,
			&run.CreatedAt, &finishedAt,
		); err != nil {
			return nil, err
		}
		if finishedAt.Valid {
			t := finishedAt.Time
			run.FinishedAt = &t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListOrphans returns every journal item whose booking was created but never
// verified, across all runs.
func (r CheckoutRunRepository) ListOrphans() ([]models.CheckoutRunItem, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("database not connected")
	}

	rows, err := db.Query(`
		SELECT run_id, item_index, package_id, booking_id, amount_due, amount_paid, state, COALESCE(last_error,'')
		FROM ` + r.itemsTable() + `
		WHERE state=?
		ORDER BY run_id, item_index`, models.ItemOrphaned)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CheckoutRunItem{}
	for rows.Next() {
		var it models.CheckoutRunItem
		if err := rows.Scan(&it.RunID, &it.ItemIndex, &it.PackageID, &it.BookingID, &it.AmountDue, &it.AmountPaid, &it.State, &it.LastError); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
