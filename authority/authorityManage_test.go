package authority_test

import (
	"context"
	"testing"

	"github.com/shaorongqiang/permission-api/account"
	"github.com/shaorongqiang/permission-api/authority"
	"github.com/shaorongqiang/permission-api/session"
	"github.com/shaorongqiang/permission-api/testinfra"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	. "github.com/onsi/gomega"
)

func TestIsAdminByToken(t *testing.T) {
	RegisterTestingT(t)

	var testDatabase *testinfra.TestDatabase

	t.Run("should be true only for a live session of an admin role holder", func(t *testing.T) {
		defer testinfra.StopSqliteTestDatabase(testDatabase)
		testDatabase = testinfra.StartSqliteTestDatabase()
		db := testDatabase.DS.GormDB(context.Background())

		Expect(db.Create(&account.User{ID: 1, Name: "root", Secret: account.HashSha256("root123")}).Error).To(BeNil())
		Expect(db.Create(&account.User{ID: 2, Name: "ann", Secret: account.HashSha256("abc123")}).Error).To(BeNil())
		Expect(db.Create(&authority.UserRole{UserID: 1, RoleID: authority.AdminRoleID}).Error).To(BeNil())
		Expect(db.Create(&authority.UserRole{UserID: 2, RoleID: 300}).Error).To(BeNil())

		adminSession, err := session.Issue(db, 1)
		Expect(err).To(BeNil())
		plainSession, err := session.Issue(db, 2)
		Expect(err).To(BeNil())

		admin, err := authority.IsAdminByToken(db, adminSession.Token)
		Expect(err).To(BeNil())
		Expect(admin).To(BeTrue())

		admin, err = authority.IsAdminByToken(db, plainSession.Token)
		Expect(err).To(BeNil())
		Expect(admin).To(BeFalse())
	})

	t.Run("a token without a session should yield false, not an error", func(t *testing.T) {
		defer testinfra.StopSqliteTestDatabase(testDatabase)
		testDatabase = testinfra.StartSqliteTestDatabase()
		db := testDatabase.DS.GormDB(context.Background())

		admin, err := authority.IsAdminByToken(db, "no-session")
		Expect(err).To(BeNil())
		Expect(admin).To(BeFalse())
	})
}

func TestMenuPathsByToken(t *testing.T) {
	RegisterTestingT(t)

	var testDatabase *testinfra.TestDatabase

	t.Run("should aggregate distinct menu paths over every role of the user", func(t *testing.T) {
		defer testinfra.StopSqliteTestDatabase(testDatabase)
		testDatabase = testinfra.StartSqliteTestDatabase()
		db := testDatabase.DS.GormDB(context.Background())

		Expect(db.Create(&account.User{ID: 5, Name: "bob", Secret: account.HashSha256("abc123")}).Error).To(BeNil())
		menuUser := authority.Menu{ID: 11, Name: "user", Path: "/user"}
		menuRole := authority.Menu{ID: 12, Name: "role", Path: "/role"}
		Expect(db.Create(&menuUser).Error).To(BeNil())
		Expect(db.Create(&menuRole).Error).To(BeNil())
		Expect(db.Create(&authority.Role{ID: 21, Name: "ops", Status: 1}).Error).To(BeNil())
		Expect(db.Create(&authority.Role{ID: 22, Name: "viewer", Status: 1}).Error).To(BeNil())
		Expect(db.Create(&authority.UserRole{UserID: 5, RoleID: 21}).Error).To(BeNil())
		Expect(db.Create(&authority.UserRole{UserID: 5, RoleID: 22}).Error).To(BeNil())
		// both roles grant /user, only one grants /role
		Expect(db.Create(&authority.RoleMenu{RoleID: 21, MenuID: 11}).Error).To(BeNil())
		Expect(db.Create(&authority.RoleMenu{RoleID: 22, MenuID: 11}).Error).To(BeNil())
		Expect(db.Create(&authority.RoleMenu{RoleID: 21, MenuID: 12}).Error).To(BeNil())

		s, err := session.Issue(db, 5)
		Expect(err).To(BeNil())

		paths, err := authority.MenuPathsByToken(db, s.Token)
		Expect(err).To(BeNil())
		Expect(paths).To(ConsistOf("/user", "/role"))
	})

	t.Run("should be empty for a token without a session or without grants", func(t *testing.T) {
		defer testinfra.StopSqliteTestDatabase(testDatabase)
		testDatabase = testinfra.StartSqliteTestDatabase()
		db := testDatabase.DS.GormDB(context.Background())

		paths, err := authority.MenuPathsByToken(db, "no-session")
		Expect(err).To(BeNil())
		Expect(paths).To(BeEmpty())

		s, err := session.Issue(db, 9)
		Expect(err).To(BeNil())
		paths, err = authority.MenuPathsByToken(db, s.Token)
		Expect(err).To(BeNil())
		Expect(paths).To(BeEmpty())
	})
}

func TestReplaceBindings(t *testing.T) {
	RegisterTestingT(t)

	var testDatabase *testinfra.TestDatabase

	t.Run("replace user roles should rewrite the binding set", func(t *testing.T) {
		defer testinfra.StopSqliteTestDatabase(testDatabase)
		testDatabase = testinfra.StartSqliteTestDatabase()
		db := testDatabase.DS.GormDB(context.Background())

		Expect(authority.ReplaceUserRoles(db, 7, []types.ID{100, 101})).To(BeNil())
		Expect(queryRoleIDs(db, 7)).To(ConsistOf(types.ID(100), types.ID(101)))

		Expect(authority.ReplaceUserRoles(db, 7, []types.ID{101, 102})).To(BeNil())
		Expect(queryRoleIDs(db, 7)).To(ConsistOf(types.ID(101), types.ID(102)))

		Expect(authority.ReplaceUserRoles(db, 7, nil)).To(BeNil())
		Expect(queryRoleIDs(db, 7)).To(BeEmpty())
	})

	t.Run("replace role menus should rewrite the binding set", func(t *testing.T) {
		defer testinfra.StopSqliteTestDatabase(testDatabase)
		testDatabase = testinfra.StartSqliteTestDatabase()
		db := testDatabase.DS.GormDB(context.Background())

		Expect(authority.ReplaceRoleMenus(db, 8, []types.ID{200})).To(BeNil())
		var bindings []authority.RoleMenu
		Expect(db.Where(&authority.RoleMenu{RoleID: 8}).Find(&bindings).Error).To(BeNil())
		Expect(len(bindings)).To(Equal(1))
		Expect(bindings[0].MenuID).To(Equal(types.ID(200)))

		Expect(authority.ReplaceRoleMenus(db, 8, nil)).To(BeNil())
		bindings = nil
		Expect(db.Where(&authority.RoleMenu{RoleID: 8}).Find(&bindings).Error).To(BeNil())
		Expect(bindings).To(BeEmpty())
	})
}

func queryRoleIDs(db *gorm.DB, userID types.ID) []types.ID {
	var roleIDs []types.ID
	if err := db.Model(&authority.UserRole{}).Where(&authority.UserRole{UserID: userID}).
		Pluck("role_id", &roleIDs).Error; err != nil {
		panic(err)
	}
	return roleIDs
}
