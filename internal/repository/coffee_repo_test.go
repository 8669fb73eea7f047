package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"brewlog/internal/models"
	"brewlog/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCoffeeSQLite_ConsumeBatch_SingleAtomicDecrement(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewCoffeeSQLite(db)

	// The decrement must be one UPDATE with the clamp inside SQL; any
	// read-modify-write here would reintroduce the lost-update race.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE coffee_batches SET current_weight_g = MAX(0, current_weight_g - ?)")).
		WithArgs(18.0, 5, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT cb.current_weight_g")).
		WithArgs(5, 7).
		WillReturnRows(sqlmock.NewRows([]string{"current_weight_g"}).AddRow(232.0))

	remaining, err := repo.ConsumeBatch(context.Background(), 7, 5, 18)
	if err != nil {
		t.Fatalf("ConsumeBatch() error = %v", err)
	}
	if remaining != 232 {
		t.Fatalf("remaining = %v, want 232", remaining)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCoffeeSQLite_ConsumeBatch_ForeignBatchIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewCoffeeSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE coffee_batches")).
		WithArgs(10.0, 5, 8).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := repo.ConsumeBatch(context.Background(), 8, 5, 10); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCoffeeSQLite_CreateBatch_FreshBagStartsFull(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewCoffeeSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO coffee_batches")).
		WithArgs(14.5, nil, 250.0, 250.0, nil, true, 3, 7).
		WillReturnResult(sqlmock.NewResult(9, 1))

	id, err := repo.CreateBatch(context.Background(), 7, models.CoffeeBatch{
		CoffeeBeanID: 3,
		Price:        14.5,
		WeightG:      250,
		Active:       true,
	})
	if err != nil {
		t.Fatalf("CreateBatch() error = %v", err)
	}
	if id != 9 {
		t.Fatalf("CreateBatch() id = %d, want 9", id)
	}
}

func TestCoffeeSQLite_CreateBatch_ForeignBeanIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewCoffeeSQLite(db)

	// ownership subquery matches nothing -> 0 rows inserted
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO coffee_batches")).
		WithArgs(0.0, nil, 250.0, 250.0, nil, true, 3, 9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.CreateBatch(context.Background(), 9, models.CoffeeBatch{
		CoffeeBeanID: 3,
		WeightG:      250,
		Active:       true,
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
