package testinfra

import (
	"context"
	"log"
	"strings"

	"github.com/shaorongqiang/permission-api/account"
	"github.com/shaorongqiang/permission-api/authority"
	"github.com/shaorongqiang/permission-api/persistence"
	"github.com/shaorongqiang/permission-api/session"

	"github.com/google/uuid"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

type TestDatabase struct {
	TestDatabaseName string
	DS               *persistence.DataSourceManager
}

// StartSqliteTestDatabase opens a uniquely named in-memory database, migrates
// the full schema and installs it as the active data source.
func StartSqliteTestDatabase() *TestDatabase {
	databaseName := "permission_test_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	dbConfig := &persistence.DatabaseConfig{
		DriverType: "sqlite3", DriverArgs: "file:" + databaseName + "?mode=memory&cache=shared",
	}

	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		defer ds.Stop()
		log.Fatalf("database connection failed %v\n", err)
	}

	db := ds.GormDB(context.Background())
	// a shared in-memory database vanishes with its last connection
	db.DB().SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&account.User{}, &authority.Role{}, &authority.Menu{},
		&authority.UserRole{}, &authority.RoleMenu{}, &session.Session{}).Error; err != nil {
		defer ds.Stop()
		log.Fatalf("database migration failed %v\n", err)
	}

	persistence.ActiveDataSourceManager = ds
	return &TestDatabase{TestDatabaseName: databaseName, DS: ds}
}

func StopSqliteTestDatabase(testDatabase *TestDatabase) {
	if testDatabase == nil {
		return
	}
	if persistence.ActiveDataSourceManager == testDatabase.DS {
		persistence.ActiveDataSourceManager = nil
	}
	if testDatabase.DS != nil {
		testDatabase.DS.Stop()
	}
}
