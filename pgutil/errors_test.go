package pgutil

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: KindOther},
		{name: "no rows", err: sql.ErrNoRows, want: KindNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("get order: %w", sql.ErrNoRows), want: KindNotFound},
		{name: "bad conn", err: driver.ErrBadConn, want: KindUnavailable},
		{name: "pq unique", err: &pq.Error{Code: "23505"}, want: KindUniqueViolation},
		{name: "pgx unique", err: &pgconn.PgError{Code: "23505"}, want: KindUniqueViolation},
		{name: "serialization", err: &pq.Error{Code: "40001"}, want: KindSerialization},
		{name: "connection exception", err: &pgconn.PgError{Code: "08006"}, want: KindUnavailable},
		{name: "admin shutdown", err: &pq.Error{Code: "57P01"}, want: KindUnavailable},
		{name: "syntax error", err: &pq.Error{Code: "42601"}, want: KindOther},
		{name: "network", err: &net.OpError{Op: "dial", Err: errors.New("refused")}, want: KindUnavailable},
		{name: "plain", err: errors.New("boom"), want: KindOther},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, Classify(testCase.err))
		})
	}
}
