package repository

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/noteduco342/storyline-backend/internal/apperr"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgAdminShutdown       = "57P01"
	pgCannotConnectNow    = "57P03"
	pgTooManyConnections  = "53300"
)

// translateError maps driver failures onto the apperr taxonomy. op names the
// operation for the error message.
func translateError(err error, op string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return pkgerrors.Wrap(apperr.ErrNotFound, op)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return pkgerrors.Wrap(apperr.ErrConflict, op)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return pkgerrors.Wrap(apperr.ErrNotFound, op)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return pkgerrors.Wrapf(apperr.ErrStorageUnavailable, "%s: %v", op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return pkgerrors.Wrapf(apperr.ErrConflict, "%s: %s", op, pgErr.ConstraintName)
		case pgErr.Code == pgForeignKeyViolation:
			return pkgerrors.Wrapf(apperr.ErrNotFound, "%s: %s", op, pgErr.ConstraintName)
		case strings.HasPrefix(pgErr.Code, "08"),
			pgErr.Code == pgAdminShutdown,
			pgErr.Code == pgCannotConnectNow,
			pgErr.Code == pgTooManyConnections:
			return pkgerrors.Wrapf(apperr.ErrStorageUnavailable, "%s: %s", op, pgErr.Message)
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return pkgerrors.Wrapf(apperr.ErrStorageUnavailable, "%s: %v", op, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return pkgerrors.Wrapf(apperr.ErrStorageUnavailable, "%s: %v", op, err)
	}

	return pkgerrors.Wrap(err, op)
}
