package infra

import (
	"fmt"

	"github.com/casbin/casbin/v2"
)

// NewEnforcer builds a casbin enforcer from the domain model file.
// Policies are not loaded here; the rbac service fills them per tenant
// from the database on each enforce call.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	e, err := casbin.NewEnforcer(modelPath)
	if err != nil {
		return nil, fmt.Errorf("init casbin enforcer from %s: %w", modelPath, err)
	}
	return e, nil
}
