package permission

import (
	"fmt"

	"sezzlegate/internal/shared/authorization"
	"sezzlegate/internal/shared/constants"
)

func defaultPolicies() [][]string {
	admin := authorization.RoleAdmin.String()
	operator := authorization.RoleOperator.String()
	viewer := authorization.RoleViewer.String()

	return [][]string{
		// Admin can do everything with orders, refunds included
		{admin, constants.ResourceOrder, "*"},

		{operator, constants.ResourceOrder, constants.ActionRead},
		{operator, constants.ResourceOrder, constants.ActionCapture},
		{operator, constants.ResourceOrder, constants.ActionRelease},

		{viewer, constants.ResourceOrder, constants.ActionRead},
	}
}

// InitOrderPermissions seeds the default role policies. Existing rows are kept.
func (e *Enforcer) InitOrderPermissions() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	added := 0
	for _, policy := range defaultPolicies() {
		ok, err := e.enforcer.AddPolicy(policy[0], policy[1], policy[2])
		if err != nil {
			e.logger.Errorw("failed to add order permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
		if ok {
			added++
		}
	}

	e.logger.Infow("order permissions initialized successfully", "added", added)
	return nil
}
