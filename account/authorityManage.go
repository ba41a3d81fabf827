package account

import (
	"context"
	"errors"
	"os"

	"github.com/shaorongqiang/permission-api/authority"
	"github.com/shaorongqiang/permission-api/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

var (
	initialAdminUserID = types.ID(1)
)

// DefaultSecurityConfiguration seeds the admin role and the initial admin
// account so a fresh deployment is reachable. It is idempotent and safe to
// run on every startup.
func DefaultSecurityConfiguration() error {
	db := persistence.ActiveDataSourceManager.GormDB(context.Background())

	adminRole := authority.Role{ID: authority.AdminRoleID, Name: "administrator", Status: 1}
	if err := db.Save(&adminRole).Error; err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := User{}
		err := tx.Where(&User{ID: initialAdminUserID}).First(&admin).Error
		if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
			initialAdminPassword := os.Getenv("INITIAL_ADMIN_PASSWORD")
			if initialAdminPassword == "" {
				initialAdminPassword = "admin123"
			}
			if err := tx.Create(&User{ID: initialAdminUserID, Name: "admin", Secret: HashSha256(initialAdminPassword)}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		binding := authority.UserRole{UserID: initialAdminUserID, RoleID: authority.AdminRoleID}
		var count int
		if err := tx.Model(&authority.UserRole{}).Where(&binding).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := tx.Create(&binding).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
