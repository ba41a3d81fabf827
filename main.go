package main

import (
	"context"
	"io"

	"github.com/shaorongqiang/permission-api/account"
	"github.com/shaorongqiang/permission-api/authority"
	"github.com/shaorongqiang/permission-api/common"
	"github.com/shaorongqiang/permission-api/persistence"
	"github.com/shaorongqiang/permission-api/servehttp"
	"github.com/shaorongqiang/permission-api/session"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegerlog "github.com/uber/jaeger-client-go/log"
	"github.com/uber/jaeger-lib/metrics"
)

func main() {
	logrus.Info("service start")

	if closer := initTracer(); closer != nil {
		defer func() {
			_ = closer.Close()
		}()
	}

	dbConfig, err := persistence.ParseDatabaseConfigFromEnv()
	if err != nil {
		logrus.Fatalf("parse database config failed %v", err)
	}

	// create database (no conflict)
	if dbConfig.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			logrus.Fatalf("failed to prepare database %v", err)
		}
	}

	// connect database
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		logrus.Fatalf("database connection failed %v", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	err = ds.GormDB(context.Background()).AutoMigrate(
		&account.User{}, &authority.Role{}, &authority.Menu{},
		&authority.UserRole{}, &authority.RoleMenu{}, &session.Session{}).Error
	if err != nil {
		logrus.Fatalf("database migration failed %v", err)
	}

	if err := account.DefaultSecurityConfiguration(); err != nil {
		logrus.Fatalf("security bootstrap failed %v", err)
	}

	engine := servehttp.NewRouteEngine()
	servehttp.StartHTTPServer(engine, servehttp.ListenAddress())
}

func initTracer() io.Closer {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		logrus.Warnf("jaeger config from env failed %v", err)
		return nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = common.GetServiceName()
	}
	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(jaegerlog.StdLogger), jaegercfg.Metrics(metrics.NullFactory))
	if err != nil {
		logrus.Warnf("jaeger tracer init failed %v", err)
		return nil
	}
	opentracing.SetGlobalTracer(tracer)
	return closer
}
