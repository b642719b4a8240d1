package database

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func TestDB_CreateUser(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock DB: %v", err)
	}
	defer mockDB.Close()

	db := &DB{conn: mockDB}
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "user_name", "password", "registered_at", "updated_at"}).
		AddRow(int64(1), "alice", "hashed", time.Now(), nil)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "hashed").
		WillReturnRows(rows)

	user, err := db.CreateUser(ctx, "alice", "hashed")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if user.ID != 1 {
		t.Errorf("user.ID = %d, want 1", user.ID)
	}
	if user.UserName != "alice" {
		t.Errorf("user.UserName = %q, want %q", user.UserName, "alice")
	}
	if user.Password != "hashed" {
		t.Errorf("user.Password = %q, want %q", user.Password, "hashed")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestDB_CreateUser_Duplicate(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock DB: %v", err)
	}
	defer mockDB.Close()

	db := &DB{conn: mockDB}
	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "hashed").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err = db.CreateUser(ctx, "alice", "hashed")
	if err == nil {
		t.Fatal("CreateUser() error = nil, want duplicate error")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("CreateUser() error = %v, want already exists error", err)
	}
}

func TestDB_GetUserByName(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock DB: %v", err)
	}
	defer mockDB.Close()

	db := &DB{conn: mockDB}
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "user_name", "password", "registered_at", "updated_at"}).
			AddRow(int64(7), "bob", "hashed", time.Now(), nil)
		mock.ExpectQuery("SELECT id, user_name, password").
			WithArgs("bob").
			WillReturnRows(rows)

		user, err := db.GetUserByName(ctx, "bob")
		if err != nil {
			t.Fatalf("GetUserByName() error = %v", err)
		}
		if user.ID != 7 || user.UserName != "bob" {
			t.Errorf("user = %+v, want ID 7 name bob", user)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_name, password").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "password", "registered_at", "updated_at"}))

		_, err := db.GetUserByName(ctx, "ghost")
		if err == nil {
			t.Fatal("GetUserByName() error = nil, want not found")
		}
		if !strings.Contains(err.Error(), "user not found: ghost") {
			t.Errorf("GetUserByName() error = %v, want user not found", err)
		}
	})
}
