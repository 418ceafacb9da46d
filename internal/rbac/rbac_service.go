package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Roles are a fixed enumeration; policies are static and loaded at startup
// rather than per tenant.
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

// NewService builds an enforcer over the built-in role policy. Department
// scoping of approvals is business logic and stays in the leave service;
// casbin only answers "may this role hit this endpoint".
func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{RoleEmployee, "leave", "read"},
		{RoleEmployee, "leave", "create"},
		{RoleEmployee, "leave", "cancel"},
		{RoleManager, "leave", "approve"},
		{RoleAdmin, "leave", "approve"},
		{RoleEmployee, "holiday", "read"},
		{RoleAdmin, "holiday", "manage"},
		{RoleEmployee, "notification", "read"},
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	// Role inheritance: manager and admin can do anything an employee can.
	groupings := [][]string{
		{RoleManager, RoleEmployee},
		{RoleAdmin, RoleManager},
	}
	for _, g := range groupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
