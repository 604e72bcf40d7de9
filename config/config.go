package config

import (
	"fmt"
	"os"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rafidhan/tripnesia/internal/models"
	"github.com/rafidhan/tripnesia/internal/storage"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

type MidtransConfig struct {
	ServerKey string
	ClientKey string
	Env       midtrans.EnvironmentType
}

func LoadMidtransConfig() (*MidtransConfig, error) {
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_ENV") == "production" {
		env = midtrans.Production
	}
	return &MidtransConfig{
		ServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
		ClientKey: os.Getenv("MIDTRANS_CLIENT_KEY"),
		Env:       env,
	}, nil
}

func InitSnapClient(config *MidtransConfig) *snap.Client {
	var client snap.Client
	client.New(config.ServerKey, config.Env)
	return &client
}

type OSSConfig struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
}

func LoadOSSConfig() (*OSSConfig, error) {
	return &OSSConfig{
		Endpoint:        os.Getenv("OSS_ENDPOINT"),
		AccessKeyID:     os.Getenv("OSS_ACCESS_KEY_ID"),
		AccessKeySecret: os.Getenv("OSS_ACCESS_KEY_SECRET"),
		Bucket:          os.Getenv("OSS_BUCKET"),
	}, nil
}

func InitObjectStorage(config *OSSConfig) (storage.ObjectStorage, error) {
	return storage.NewOSSStorage(config.Endpoint, config.AccessKeyID, config.AccessKeySecret, config.Bucket)
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Customer{},
		&models.TourPackage{},
		&models.Destination{},
		&models.Facility{},
		&models.GalleryImage{},
		&models.Schedule{},
		&models.Booking{},
		&models.Payment{},
	)
	if err != nil {
		return nil, err
	}

	seedRoles(db)

	return db, nil
}

func seedRoles(db *gorm.DB) {
	roles := []models.Role{
		{Name: "admin"},
		{Name: "pelanggan"},
	}

	for _, role := range roles {
		var existingRole models.Role
		result := db.Where("name = ?", role.Name).First(&existingRole)
		if result.Error != nil {
			db.Create(&role)
		}
	}
}
