package userservice

import (
	"context"
	"database/sql"
	"slices"
)

func (m *DBModel) addUserPermission(tx *sql.Tx, ctx context.Context, id int, permissions ...Permission) error {
	query := `
		INSERT INTO user_permissions (user_id, permission)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	for _, p := range permissions {
		_, err := tx.ExecContext(ctx, query, id, p)
		if err != nil {
			return err
		}
	}

	return nil
}

func (u *User) HasPermission(permission Permission) bool {
	return slices.Contains(u.Permissions, permission)
}

// IsAdmin reports whether the user carries the site admin role.
func (u *User) IsAdmin() bool {
	return u.HasPermission(PermissionAdmin)
}
