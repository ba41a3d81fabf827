package account

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/shaorongqiang/permission-api/bizerror"
	"github.com/shaorongqiang/permission-api/common"
	"github.com/shaorongqiang/permission-api/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	userIdWorker *sonyflake.Sonyflake
)

func init() {
	userIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})
}

func HashSha256(raw string) string {
	h := sha256.New()
	h.Write([]byte(raw))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}

// Authenticate verifies the submitted credentials and mints a new session on
// success. An unknown username and a wrong password are reported distinctly;
// the wire format carries a separate code for each.
func Authenticate(db *gorm.DB, username, password string) (*session.Session, error) {
	user, err := FindUserByName(db, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, bizerror.ErrUsernameNotFound
	}
	if user.Secret != HashSha256(password) {
		return nil, bizerror.ErrWrongPassword
	}
	return session.Issue(db, user.ID)
}

// Register creates a user and logs it in at once.
func Register(db *gorm.DB, username, password string) (*session.Session, error) {
	existed, err := FindUserByName(db, username)
	if err != nil {
		return nil, err
	}
	if existed != nil {
		return nil, bizerror.ErrUserExisted
	}
	user := User{ID: common.NextId(userIdWorker), Name: username, Secret: HashSha256(password)}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return session.Issue(db, user.ID)
}

func FindUserByName(db *gorm.DB, name string) (*User, error) {
	user := User{}
	err := db.Where(&User{Name: name}).First(&user).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, c *UserCreation) (*UserInfo, error) {
	existed, err := FindUserByName(db, c.Username)
	if err != nil {
		return nil, err
	}
	if existed != nil {
		return nil, bizerror.ErrUserExisted
	}
	user := User{ID: common.NextId(userIdWorker), Name: c.Username, Secret: HashSha256(c.Password)}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	info := user.Info()
	return &info, nil
}

func DeleteUser(db *gorm.DB, id types.ID) error {
	user := User{}
	err := db.Where(&User{ID: id}).First(&user).Error
	if gorm.IsRecordNotFoundError(err) {
		return bizerror.ErrUserNotFound
	}
	if err != nil {
		return err
	}
	// sessions and role bindings of the user are left in place
	return db.Where(&User{ID: id}).Delete(&User{}).Error
}

func UpdateUser(db *gorm.DB, u *UserUpdating) error {
	changes := map[string]interface{}{}
	if u.Username != nil {
		changes["name"] = *u.Username
	}
	if u.Password != nil {
		changes["secret"] = HashSha256(*u.Password)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user := User{}
		err := tx.Where(&User{ID: u.ID}).First(&user).Error
		if gorm.IsRecordNotFoundError(err) {
			return bizerror.ErrUserNotFound
		}
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		return tx.Model(&User{}).Where(&User{ID: u.ID}).Updates(changes).Error
	})
}

func DetailUser(db *gorm.DB, id types.ID) (*UserInfo, error) {
	user := User{}
	err := db.Where(&User{ID: id}).First(&user).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	info := user.Info()
	return &info, nil
}

func QueryUsers(db *gorm.DB, page, pageSize uint) ([]UserInfo, error) {
	var users []User
	offset := (page - 1) * pageSize
	if err := db.Model(&User{}).Order("id ASC").Offset(offset).Limit(pageSize).
		Find(&users).Error; err != nil {
		return nil, err
	}
	infos := make([]UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, u.Info())
	}
	return infos, nil
}
