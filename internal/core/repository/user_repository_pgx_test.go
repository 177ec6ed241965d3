package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgxUserRepository_Insert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("alice", "alice@example.com", "hash").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewUserRepository(mock)
	require.NoError(t, repo.Insert(context.Background(), "alice", "alice@example.com", "hash"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxUserRepository_FindByEmail(t *testing.T) {
	columns := []string{"id", "name", "email", "password_hash"}

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantNil   bool
		wantName  string
		wantErr   bool
	}{
		{
			name: "single match",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(columns).
					AddRow(1, "alice", "alice@example.com", "hash")
				mock.ExpectQuery(`SELECT id, name, email, password_hash FROM users`).
					WithArgs("alice@example.com").
					WillReturnRows(rows)
			},
			wantName: "alice",
		},
		{
			name: "no match reads as not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, name, email, password_hash FROM users`).
					WithArgs("alice@example.com").
					WillReturnRows(pgxmock.NewRows(columns))
			},
			wantNil: true,
		},
		{
			name: "duplicate email reads as not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(columns).
					AddRow(1, "alice", "alice@example.com", "hash1").
					AddRow(2, "alice", "alice@example.com", "hash2")
				mock.ExpectQuery(`SELECT id, name, email, password_hash FROM users`).
					WithArgs("alice@example.com").
					WillReturnRows(rows)
			},
			wantNil: true,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, name, email, password_hash FROM users`).
					WithArgs("alice@example.com").
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewUserRepository(mock)
			row, err := repo.FindByEmail(context.Background(), "alice@example.com")

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				if tt.wantNil {
					assert.Nil(t, row)
				} else {
					require.NotNil(t, row)
					assert.Equal(t, tt.wantName, row.Name)
				}
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
