package services_test

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rafidhan/tripnesia/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
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
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedPackage(t *testing.T, db *gorm.DB, harga, minimalPenumpang int) *models.TourPackage {
	t.Helper()

	pkg := models.TourPackage{
		NamaPaket:        "Paket Bromo Sunrise",
		Lokasi:           "Jawa Timur",
		Durasi:           "3 hari 2 malam",
		TipePaket:        models.PackageTypePremium,
		Harga:            harga,
		MinimalPenumpang: minimalPenumpang,
		NamaDaerah:       "Bromo",
		IsActive:         true,
	}
	if err := db.Create(&pkg).Error; err != nil {
		t.Fatalf("seed package: %v", err)
	}
	return &pkg
}

// fakeStorage stands in for the object store. failFirst makes the first N
// Put calls fail, which is how partial gallery uploads are simulated.
type fakeStorage struct {
	objects   map[string][]byte
	deleted   []string
	failFirst int
	deleteErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) Put(path string, data []byte) (string, error) {
	if s.failFirst > 0 {
		s.failFirst--
		return "", fmt.Errorf("storage unavailable")
	}
	url := "https://cdn.test/" + strings.TrimPrefix(path, "/")
	s.objects[url] = data
	return url, nil
}

func (s *fakeStorage) Delete(url string) error {
	s.deleted = append(s.deleted, url)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, url)
	return nil
}
