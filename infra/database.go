package infra

import (
	"context"
	"fmt"
	"log"
	"net"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/tnqbao/gau-sequia-service/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DatabaseClient struct {
	DB     *gorm.DB
	Driver string
}

func InitDatabaseClient(cfg *config.EnvConfig) *DatabaseClient {
	db, err := OpenDatabase(cfg)
	if err != nil {
		log.Printf("Database connection failed: %v", err)
		return nil
	}

	log.Printf("Connected to %s database", cfg.Database.Driver)
	return &DatabaseClient{DB: db, Driver: cfg.Database.Driver}
}

func OpenDatabase(cfg *config.EnvConfig) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if !cfg.IsProduction() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Database.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if cfg.Database.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// Dialector picks the gorm dialect for DB_DRIVER.
func Dialector(cfg *config.EnvConfig) (gorm.Dialector, error) {
	switch cfg.Database.Driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.Postgres.HOST,
			cfg.Postgres.Username,
			cfg.Postgres.Password,
			cfg.Postgres.Database,
			cfg.Postgres.Port,
		)
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(MySQLDSN(cfg)), nil
	case "sqlite":
		return sqlite.Open(SQLiteDSN(cfg.SQLite.Path)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func MySQLDSN(cfg *config.EnvConfig) string {
	dsn := mysqldriver.NewConfig()
	dsn.User = cfg.MySQL.Username
	dsn.Passwd = cfg.MySQL.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.MySQL.Host, cfg.MySQL.Port)
	dsn.DBName = cfg.MySQL.Database
	dsn.ParseTime = true
	dsn.Loc = time.UTC
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	return dsn.FormatDSN()
}

// SQLiteDSN enables foreign keys, which SQLite leaves off per connection.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}

func (d *DatabaseClient) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *DatabaseClient) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
