package repositories

import (
	"testing"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateAndFinishRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := CheckoutRunRepository{DB: db}

	created := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO checkout_runs").
		WithArgs("run-1", int64(42), models.RunKindFull, 30.0, models.RunRunning, created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.CreateRun(models.CheckoutRun{
		ID: "run-1", UserID: 42, Kind: models.RunKindFull, Percentage: 30, Status: models.RunRunning, CreatedAt: created,
	}); err != nil {
		t.Fatalf("CreateRun error: %v", err)
	}

	mock.ExpectExec("UPDATE checkout_runs").
		WithArgs(models.RunFailed, "create_order", 2, "run-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.FinishRun("run-1", models.RunFailed, "create_order", 2); err != nil {
		t.Fatalf("FinishRun error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateItemStatePreservesEarlierBookingID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := CheckoutRunRepository{DB: db}

	// A later failure update carries bookingID=0; the CASE guard keeps the
	// value the booking-created update wrote.
	mock.ExpectExec("UPDATE checkout_run_items").
		WithArgs(models.ItemOrphaned, int64(0), int64(0), int64(0), int64(0), int64(0), "gateway order rejected", "run-1", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateItemState("run-1", 2, models.ItemOrphaned, 0, 0, 0, "gateway order rejected"); err != nil {
		t.Fatalf("UpdateItemState error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetRunWithItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := CheckoutRunRepository{DB: db}

	created := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	finished := created.Add(5 * time.Minute)

	mock.ExpectQuery("SELECT (.+) FROM checkout_runs").
		WithArgs("run-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "kind", "percentage", "status", "failed_step", "failed_item", "created_at", "finished_at",
		}).AddRow("run-1", 42, models.RunKindFull, 30.0, models.RunFailed, "verify_payment", 3, created, finished))

	mock.ExpectQuery("SELECT (.+) FROM checkout_run_items").
		WithArgs("run-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"run_id", "item_index", "package_id", "booking_id", "amount_due", "amount_paid", "state", "last_error",
		}).
			AddRow("run-1", 1, 10, 101, 15000, 15000, models.ItemVerified, "").
			AddRow("run-1", 2, 20, 102, 7500, 0, models.ItemOrphaned, "signature mismatch"))

	run, items, err := repo.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun error: %v", err)
	}
	if run.Status != models.RunFailed || run.FailedStep != "verify_payment" || run.FailedItem != 3 {
		t.Errorf("unexpected run: %+v", run)
	}
	if run.FinishedAt == nil || !run.FinishedAt.Equal(finished) {
		t.Errorf("FinishedAt = %v, want %v", run.FinishedAt, finished)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[1].State != models.ItemOrphaned || items[1].LastError != "signature mismatch" {
		t.Errorf("unexpected item 2: %+v", items[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetRunNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := CheckoutRunRepository{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM checkout_runs").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "kind", "percentage", "status", "failed_step", "failed_item", "created_at", "finished_at",
		}))

	_, _, err = repo.GetRun("missing")
	if !domain.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestListOrphans(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := CheckoutRunRepository{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM checkout_run_items").
		WithArgs(models.ItemOrphaned).
		WillReturnRows(sqlmock.NewRows([]string{
			"run_id", "item_index", "package_id", "booking_id", "amount_due", "amount_paid", "state", "last_error",
		}).AddRow("run-1", 2, 20, 102, 7500, 0, models.ItemOrphaned, "dismissed"))

	items, err := repo.ListOrphans()
	if err != nil {
		t.Fatalf("ListOrphans error: %v", err)
	}
	if len(items) != 1 || items[0].BookingID != 102 {
		t.Errorf("unexpected orphans: %+v", items)
	}
}
