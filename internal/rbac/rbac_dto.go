package rbac

import "go-academy/internal/domain"

type EnforceRequest = domain.EnforceRequest

type EnforceResponse = domain.EnforceResponse

type RoleResponse = domain.RoleResponse

type CreateRoleRequest = domain.CreateRoleRequest

type UpdateRoleRequest = domain.UpdateRoleRequest

type PermissionResponse = domain.PermissionResponse
