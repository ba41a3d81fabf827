package authority

import (
	"github.com/shaorongqiang/permission-api/common"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	roleIdWorker *sonyflake.Sonyflake
)

func init() {
	roleIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})
}

func CreateRole(db *gorm.DB, c *RoleCreation) (*Role, error) {
	role := Role{ID: common.NextId(roleIdWorker), Name: c.Name, DataScope: c.DataScope, Status: c.Status}
	if err := db.Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func DeleteRole(db *gorm.DB, id types.ID) error {
	return db.Where(&Role{ID: id}).Delete(&Role{}).Error
}

func UpdateRole(db *gorm.DB, u *RoleUpdating) error {
	changes := map[string]interface{}{}
	if u.Name != nil {
		changes["name"] = *u.Name
	}
	if u.DataScope != nil {
		changes["data_scope"] = *u.DataScope
	}
	if u.Status != nil {
		changes["status"] = *u.Status
	}
	if len(changes) == 0 {
		return nil
	}
	return db.Model(&Role{}).Where(&Role{ID: u.ID}).Updates(changes).Error
}

func DetailRole(db *gorm.DB, id types.ID) (*Role, error) {
	role := Role{}
	err := db.Where(&Role{ID: id}).First(&role).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func QueryRoles(db *gorm.DB, page, pageSize uint) ([]Role, error) {
	var records []Role
	offset := (page - 1) * pageSize
	if err := db.Model(&Role{}).Order("id ASC").Offset(offset).Limit(pageSize).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
