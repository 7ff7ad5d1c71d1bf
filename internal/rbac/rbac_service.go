package rbac

import (
	"fmt"

	rbacerrors "github.com/YugandharPise/SME-HR/internal/rbac/errors"
	"github.com/YugandharPise/SME-HR/internal/rbac/infra"
	"github.com/YugandharPise/SME-HR/internal/store"

	"github.com/casbin/casbin/v2"
)

// TokenVerifier turns a bearer token into an Identity or fails with
// rbacerrors.ErrUnauthenticated.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
	Authorize(token string, op Operation) (Identity, error)
}

type service struct {
	verifier TokenVerifier
	enforcer *casbin.SyncedEnforcer
}

// NewService loads AllowSets into a fresh enforcer. The guard never touches
// the store; everything it needs is in the token.
func NewService(verifier TokenVerifier) (Service, error) {
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}

	var rules [][]string
	for op, roles := range AllowSets {
		for _, role := range roles {
			rules = append(rules, []string{role.String(), string(op)})
		}
	}
	if _, err := enforcer.AddPolicies(rules); err != nil {
		return nil, fmt.Errorf("load rbac policy: %w", err)
	}

	return &service{verifier: verifier, enforcer: enforcer}, nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	if _, ok := store.ParseRole(req.Role.String()); !ok {
		return false, nil
	}
	return s.enforcer.Enforce(req.Role.String(), string(req.Operation))
}

func (s *service) Authorize(token string, op Operation) (Identity, error) {
	if token == "" {
		return Identity{}, rbacerrors.ErrUnauthenticated
	}
	identity, err := s.verifier.Verify(token)
	if err != nil {
		return Identity{}, rbacerrors.ErrUnauthenticated
	}

	allowed, err := s.Enforce(EnforceRequest{Role: identity.Role, Operation: op})
	if err != nil {
		return Identity{}, err
	}
	if !allowed {
		return Identity{}, rbacerrors.ErrForbidden
	}
	return identity, nil
}
