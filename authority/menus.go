package authority

import (
	"github.com/shaorongqiang/permission-api/common"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	menuIdWorker *sonyflake.Sonyflake
)

func init() {
	menuIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})
}

func CreateMenu(db *gorm.DB, c *MenuCreation) (*Menu, error) {
	menu := Menu{ID: common.NextId(menuIdWorker), Name: c.Name, Path: c.Path, IsFrame: c.IsFrame}
	if err := db.Create(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func DeleteMenu(db *gorm.DB, id types.ID) error {
	return db.Where(&Menu{ID: id}).Delete(&Menu{}).Error
}

func UpdateMenu(db *gorm.DB, u *MenuUpdating) error {
	changes := map[string]interface{}{}
	if u.Name != nil {
		changes["name"] = *u.Name
	}
	if u.Path != nil {
		changes["path"] = *u.Path
	}
	if u.IsFrame != nil {
		changes["is_frame"] = *u.IsFrame
	}
	if len(changes) == 0 {
		return nil
	}
	return db.Model(&Menu{}).Where(&Menu{ID: u.ID}).Updates(changes).Error
}

func DetailMenu(db *gorm.DB, id types.ID) (*Menu, error) {
	menu := Menu{}
	err := db.Where(&Menu{ID: id}).First(&menu).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

func QueryMenus(db *gorm.DB, page, pageSize uint) ([]Menu, error) {
	var records []Menu
	offset := (page - 1) * pageSize
	if err := db.Model(&Menu{}).Order("id ASC").Offset(offset).Limit(pageSize).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
