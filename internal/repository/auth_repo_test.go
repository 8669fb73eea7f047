package repository_test

import (
	"errors"
	"regexp"
	"testing"

	"brewlog/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUserRepository_Create_ReturnsInsertID(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice", "hash", false).
		WillReturnResult(sqlmock.NewResult(3, 1))

	id, err := repo.Create("alice", "hash", false)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id != 3 {
		t.Fatalf("Create() id = %d, want 3", id)
	}
}

func TestUserRepository_GetByUsername_NotFoundIsNilNil(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, password_hash, is_guest, is_admin FROM users WHERE username")).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "is_guest", "is_admin"}))

	u, err := repo.GetByUsername("nobody")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user, got %+v", u)
	}
}

func TestUserRepository_GetByUsername_ScansFlags(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "is_guest", "is_admin"}).
		AddRow(4, "guest-ab12", "hash", true, false)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, password_hash, is_guest, is_admin FROM users WHERE username")).
		WithArgs("guest-ab12").
		WillReturnRows(rows)

	u, err := repo.GetByUsername("guest-ab12")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if u == nil || !u.IsGuest || u.IsAdmin {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUserRepository_Promote_NonGuestIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET username")).
		WithArgs("alice", "hash", 4).
		WillReturnResult(sqlmock.NewResult(0, 0)) // already registered

	if err := repo.Promote(4, "alice", "hash"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
