package session

import (
	"github.com/fundwit/go-commons/types"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

var (
	TokenGenFunc = generateToken
)

func generateToken() string {
	return uuid.New().String()
}

// Issue mints a globally unique token and persists the session record.
// The pre-check plus regenerate loop handles token collisions; the primary key
// on sessions.token stays the authoritative arbiter when two issuances race on
// the same value.
func Issue(db *gorm.DB, userID types.ID) (*Session, error) {
	for {
		token := TokenGenFunc()
		existed, err := FindByToken(db, token)
		if err != nil {
			return nil, err
		}
		if existed != nil {
			continue
		}
		s := Session{Token: token, UserID: userID}
		if err := db.Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
}

func FindByToken(db *gorm.DB, token string) (*Session, error) {
	s := Session{}
	err := db.Where(&Session{Token: token}).First(&s).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete revokes the session. Deleting an absent token is not an error.
func Delete(db *gorm.DB, token string) error {
	return db.Where(&Session{Token: token}).Delete(&Session{}).Error
}

func List(db *gorm.DB, page, pageSize uint) ([]Session, error) {
	var records []Session
	offset := (page - 1) * pageSize
	if err := db.Model(&Session{}).Order("user_id ASC").Offset(offset).Limit(pageSize).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
