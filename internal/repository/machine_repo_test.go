package repository

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"smartmolding/internal/models"
)

func newMachineMock(t *testing.T) (*MachineSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewMachineSQLite(db), mock
}

func machineColumns() []string {
	return []string{"id", "code", "brand", "type", "capacity", "area", "status", "downtime_reason"}
}

func TestMachineSeed_OneTransaction(t *testing.T) {
	t.Parallel()
	repo, mock := newMachineMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertMachineSQL)).
		WithArgs("a1-0", "CLF125-25", models.BrandCLF, models.TypeInjection, 125.0, 1, models.StatusRunning, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertMachineSQL)).
		WithArgs("a1-1", "JAD110-03", models.BrandJAD, models.TypeInjection, 110.0, 1, models.StatusRunning, nil).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := repo.Seed(ctx(t), []models.Machine{
		{ID: "a1-0", Code: "CLF125-25", Brand: models.BrandCLF, Type: models.TypeInjection, Capacity: 125, Area: 1, Status: models.StatusRunning},
		{ID: "a1-1", Code: "JAD110-03", Brand: models.BrandJAD, Type: models.TypeInjection, Capacity: 110, Area: 1, Status: models.StatusRunning},
	})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
}

func TestMachineSeed_RollsBackOnInsertError(t *testing.T) {
	t.Parallel()
	repo, mock := newMachineMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertMachineSQL)).
		WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	err := repo.Seed(ctx(t), []models.Machine{
		{ID: "a1-0", Code: "CLF125-25", Brand: models.BrandCLF, Type: models.TypeInjection, Capacity: 125, Area: 1, Status: models.StatusRunning},
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestMachineGet(t *testing.T) {
	t.Parallel()
	repo, mock := newMachineMock(t)

	rows := sqlmock.NewRows(machineColumns()).
		AddRow("a1-0", "CLF125-25", models.BrandCLF, models.TypeInjection, 125.0, 1, models.StatusStopped, "Bảo trì")

	mock.ExpectQuery(regexp.QuoteMeta(selectMachineSQL)).
		WithArgs("a1-0").
		WillReturnRows(rows)

	m, err := repo.Get(ctx(t), "a1-0")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if m.Code != "CLF125-25" || m.CurrentDowntimeReason != "Bảo trì" {
		t.Fatalf("machine = %+v", m)
	}
}

func TestMachineGet_UnknownID(t *testing.T) {
	t.Parallel()
	repo, mock := newMachineMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectMachineSQL)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(machineColumns()))

	_, err := repo.Get(ctx(t), "ghost")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestMachineList_AreaFilter(t *testing.T) {
	t.Parallel()
	repo, mock := newMachineMock(t)

	rows := sqlmock.NewRows(machineColumns()).
		AddRow("a2-0", "CLF750-12", models.BrandCLF, models.TypeInjection, 750.0, 2, models.StatusRunning, nil)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, code, brand, type, capacity, area, status, downtime_reason FROM machines WHERE area=? ORDER BY rowid ASC`,
	)).
		WithArgs(2).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Area != 2 {
		t.Fatalf("machines = %+v", got)
	}
	// NULL reason scans to the empty string.
	if got[0].CurrentDowntimeReason != "" {
		t.Fatalf("reason = %q", got[0].CurrentDowntimeReason)
	}
}

func TestMachineList_WholeFloorHasNoWhereClause(t *testing.T) {
	t.Parallel()
	repo, mock := newMachineMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, code, brand, type, capacity, area, status, downtime_reason FROM machines ORDER BY rowid ASC`,
	)).
		WillReturnRows(sqlmock.NewRows(machineColumns()))

	got, err := repo.List(ctx(t), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("machines = %+v", got)
	}
}

func TestMachineSetStatus(t *testing.T) {
	t.Parallel()
	repo, mock := newMachineMock(t)

	mock.ExpectExec(regexp.QuoteMeta(setMachineStatusSQL)).
		WithArgs(models.StatusStopped, "Sự cố điện", "a1-0").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetStatus(ctx(t), "a1-0", models.StatusStopped, "Sự cố điện"); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
}

func TestMachineSetStatus_EmptyReasonStoredAsNull(t *testing.T) {
	t.Parallel()
	repo, mock := newMachineMock(t)

	mock.ExpectExec(regexp.QuoteMeta(setMachineStatusSQL)).
		WithArgs(models.StatusRunning, nil, "a1-0").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetStatus(ctx(t), "a1-0", models.StatusRunning, ""); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
}

func TestMachineSetStatus_UnknownID(t *testing.T) {
	t.Parallel()
	repo, mock := newMachineMock(t)

	mock.ExpectExec(regexp.QuoteMeta(setMachineStatusSQL)).
		WithArgs(models.StatusStopped, "Sự cố điện", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetStatus(ctx(t), "ghost", models.StatusStopped, "Sự cố điện")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestMachineUpdateDetails_BuildsSetClauseFromChangedFields(t *testing.T) {
	t.Parallel()
	repo, mock := newMachineMock(t)

	code := "CLF140-25"
	capacity := 140.0
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE machines SET code=?, capacity=? WHERE id=?`)).
		WithArgs("CLF140-25", 140.0, "a1-0").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateDetails(ctx(t), "a1-0", models.MachineUpdate{Code: &code, Capacity: &capacity})
	if err != nil {
		t.Fatalf("UpdateDetails: %v", err)
	}
}

func TestMachineUpdateDetails_NoFieldsStillValidatesID(t *testing.T) {
	t.Parallel()
	repo, mock := newMachineMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectMachineSQL)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(machineColumns()))

	err := repo.UpdateDetails(ctx(t), "ghost", models.MachineUpdate{})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err = %v, want sql.ErrNoRows", err)
	}
}
