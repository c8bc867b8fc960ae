package salarypolicy

import (
	"errors"
	"strings"

	salarypolicyerrors "go-academy/internal/salarypolicy/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarypolicyerrors.ErrPolicyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_salary_policy_tenant_name":
			return salarypolicyerrors.ErrPolicyNameAlreadyExists
		case "uq_policy_assignment_staff":
			return salarypolicyerrors.ErrAssignmentAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "uq_salary_policy_tenant_name") {
			return salarypolicyerrors.ErrPolicyNameAlreadyExists
		}
		if strings.Contains(errMsg, "uq_policy_assignment_staff") {
			return salarypolicyerrors.ErrAssignmentAlreadyExists
		}
	}

	return err
}
