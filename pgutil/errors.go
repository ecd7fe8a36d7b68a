// Package pgutil classifies database errors from either Postgres driver so
// repositories can translate them into their own sentinel errors.
package pgutil

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

type Kind int

const (
	KindOther Kind = iota
	KindNotFound
	KindUniqueViolation
	KindSerialization
	KindUnavailable
)

func Classify(err error) Kind {
	if err == nil {
		return KindOther
	}
	if errors.Is(err, sql.ErrNoRows) {
		return KindNotFound
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return KindUnavailable
	}

	if code := sqlState(err); code != "" {
		switch {
		case code == "23505":
			return KindUniqueViolation
		case code == "40001", code == "40P01":
			return KindSerialization
		case code == "55P03", code == "57P01", code == "57P03", strings.HasPrefix(code, "08"):
			return KindUnavailable
		}
		return KindOther
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindUnavailable
	}
	return KindOther
}

func sqlState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
