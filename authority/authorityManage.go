package authority

import (
	"os"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

// AdminRoleID names the role whose holders bypass menu checks entirely.
// Overridable through the ADMIN_ROLE_ID environment variable.
var AdminRoleID = types.ID(1)

func init() {
	if v := os.Getenv("ADMIN_ROLE_ID"); v != "" {
		if id, err := types.ParseID(v); err == nil {
			AdminRoleID = id
		}
	}
}

// IsAdminByToken reports whether the token resolves to a live session whose
// user holds the admin role. A token without a session yields false, not an
// error; only the auth filter distinguishes the two cases.
func IsAdminByToken(db *gorm.DB, token string) (bool, error) {
	var count int
	err := db.Table("sessions").
		Joins("JOIN user_roles ON user_roles.user_id = sessions.user_id").
		Where("sessions.token = ? AND user_roles.role_id = ?", token, AdminRoleID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MenuPathsByToken resolves the distinct set of menu paths reachable from the
// token through every role the session's user holds.
func MenuPathsByToken(db *gorm.DB, token string) ([]string, error) {
	var paths []string
	err := db.Table("sessions").
		Joins("JOIN user_roles ON user_roles.user_id = sessions.user_id").
		Joins("JOIN role_menus ON role_menus.role_id = user_roles.role_id").
		Joins("JOIN menus ON menus.id = role_menus.menu_id").
		Where("sessions.token = ?", token).
		Pluck("DISTINCT menus.path", &paths).Error
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// ReplaceUserRoles rewrites the role bindings of a user in one transaction.
func ReplaceUserRoles(db *gorm.DB, userID types.ID, roleIDs []types.ID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&UserRole{UserID: userID}).Delete(&UserRole{}).Error; err != nil {
			return err
		}
		for _, roleID := range roleIDs {
			if err := tx.Create(&UserRole{UserID: userID, RoleID: roleID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceRoleMenus rewrites the menu bindings of a role in one transaction.
func ReplaceRoleMenus(db *gorm.DB, roleID types.ID, menuIDs []types.ID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&RoleMenu{RoleID: roleID}).Delete(&RoleMenu{}).Error; err != nil {
			return err
		}
		for _, menuID := range menuIDs {
			if err := tx.Create(&RoleMenu{RoleID: roleID, MenuID: menuID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
