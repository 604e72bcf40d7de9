package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafidhan/tripnesia/internal/helpers"
	"github.com/rafidhan/tripnesia/internal/models"
	"github.com/rafidhan/tripnesia/internal/storage"
)

type PackageInput struct {
	NamaPaket        string
	Lokasi           string
	Durasi           string
	TipePaket        string
	Harga            int
	MinimalPenumpang int
	NamaDaerah       string
	GambarURL        string
	PosterURL        string
	BrosurURL        string
	IsActive         bool
}

type FacilityInput struct {
	Nama string
	Icon string
}

// GalleryFile is one gallery image to upload, carried as raw bytes.
type GalleryFile struct {
	Filename string
	Data     []byte
}

// UploadFailure is one skipped gallery file. Gallery uploads are
// best-effort: a failed file is logged and skipped, the operation
// still succeeds.
type UploadFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

type PackageService struct {
	db      *gorm.DB
	storage storage.ObjectStorage
}

func NewPackageService(db *gorm.DB, objectStorage storage.ObjectStorage) *PackageService {
	return &PackageService{db: db, storage: objectStorage}
}

func validatePackageInput(in PackageInput) error {
	if in.NamaPaket == "" {
		return helpers.NewValidationError("nama paket is required")
	}
	if in.TipePaket != models.PackageTypePremium && in.TipePaket != models.PackageTypeEkonomis {
		return helpers.NewValidationError("tipe paket must be %s or %s", models.PackageTypePremium, models.PackageTypeEkonomis)
	}
	if in.Harga <= 0 {
		return helpers.NewValidationError("harga must be positive")
	}
	if in.MinimalPenumpang < 1 {
		return helpers.NewValidationError("minimal penumpang must be at least 1")
	}
	return nil
}

// Create inserts the package with its ordered destinations and facilities
// in one transaction, then uploads the gallery files best-effort.
func (s *PackageService) Create(ctx context.Context, in PackageInput, destinations []string, facilities []FacilityInput, galleryFiles []GalleryFile) (*models.TourPackage, []UploadFailure, error) {
	if err := validatePackageInput(in); err != nil {
		return nil, nil, err
	}

	pkg := models.TourPackage{
		NamaPaket:        in.NamaPaket,
		Lokasi:           in.Lokasi,
		Durasi:           in.Durasi,
		TipePaket:        in.TipePaket,
		Harga:            in.Harga,
		MinimalPenumpang: in.MinimalPenumpang,
		NamaDaerah:       in.NamaDaerah,
		GambarURL:        in.GambarURL,
		PosterURL:        in.PosterURL,
		BrosurURL:        in.BrosurURL,
		IsActive:         in.IsActive,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pkg).Error; err != nil {
			return err
		}
		return insertChildren(tx, pkg.ID, destinations, facilities)
	})
	if err != nil {
		return nil, nil, translateDBError(err, "package")
	}

	failures := s.uploadGallery(ctx, &pkg, galleryFiles, 0)

	if err := s.reload(ctx, &pkg); err != nil {
		return nil, failures, err
	}
	return &pkg, failures, nil
}

// Update rewrites the package row and replaces destinations and facilities
// wholesale inside the same transaction, so there is never a visible
// empty-children window. Old child rows get new identifiers. Gallery
// images are diffed instead: anything not in keptGalleryUrls is deleted
// from object storage and from its row, then the new files are appended.
func (s *PackageService) Update(ctx context.Context, packageID uuid.UUID, in PackageInput, destinations []string, facilities []FacilityInput, newGalleryFiles []GalleryFile, keptGalleryUrls []string) (*models.TourPackage, []UploadFailure, error) {
	if err := validatePackageInput(in); err != nil {
		return nil, nil, err
	}

	var pkg models.TourPackage
	err := s.db.WithContext(ctx).
		Preload("GalleryImages", func(db *gorm.DB) *gorm.DB { return db.Order("urutan ASC") }).
		First(&pkg, "id = ?", packageID).Error
	if err != nil {
		return nil, nil, translateDBError(err, "package")
	}

	kept := make(map[string]bool, len(keptGalleryUrls))
	for _, url := range keptGalleryUrls {
		kept[url] = true
	}
	var dropped []models.GalleryImage
	for _, image := range pkg.GalleryImages {
		if !kept[image.ImageURL] {
			dropped = append(dropped, image)
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"nama_paket":        in.NamaPaket,
			"lokasi":            in.Lokasi,
			"durasi":            in.Durasi,
			"tipe_paket":        in.TipePaket,
			"harga":             in.Harga,
			"minimal_penumpang": in.MinimalPenumpang,
			"nama_daerah":       in.NamaDaerah,
			"gambar_url":        in.GambarURL,
			"poster_url":        in.PosterURL,
			"brosur_url":        in.BrosurURL,
			"is_active":         in.IsActive,
		}
		if err := tx.Model(&pkg).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("package_id = ?", pkg.ID).Delete(&models.Destination{}).Error; err != nil {
			return err
		}
		if err := tx.Where("package_id = ?", pkg.ID).Delete(&models.Facility{}).Error; err != nil {
			return err
		}
		if err := insertChildren(tx, pkg.ID, destinations, facilities); err != nil {
			return err
		}

		for _, image := range dropped {
			if err := tx.Delete(&models.GalleryImage{}, "id = ?", image.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, translateDBError(err, "package")
	}

	// Storage cleanup happens after the rows are gone. A failed delete
	// leaks the file, which is preferable to a row pointing at nothing.
	for _, image := range dropped {
		if err := s.storage.Delete(image.ImageURL); err != nil {
			log.Printf("failed to delete gallery object %s: %v", image.ImageURL, err)
		}
	}

	nextOrdinal := 0
	for _, image := range pkg.GalleryImages {
		if kept[image.ImageURL] && image.Urutan >= nextOrdinal {
			nextOrdinal = image.Urutan + 1
		}
	}
	failures := s.uploadGallery(ctx, &pkg, newGalleryFiles, nextOrdinal)

	if err := s.reload(ctx, &pkg); err != nil {
		return nil, failures, err
	}
	return &pkg, failures, nil
}

// Delete refuses to remove a package that still has bookings. Package-level
// images (gambar, poster, brosur) are not cleaned out of object storage.
func (s *PackageService) Delete(ctx context.Context, packageID uuid.UUID) error {
	var pkg models.TourPackage
	if err := s.db.WithContext(ctx).First(&pkg, "id = ?", packageID).Error; err != nil {
		return translateDBError(err, "package")
	}

	var bookingCount int64
	if err := s.db.WithContext(ctx).Model(&models.Booking{}).Where("package_id = ?", pkg.ID).Count(&bookingCount).Error; err != nil {
		return err
	}
	if bookingCount > 0 {
		return helpers.NewConflictError("package has %d booking(s); delete them first", bookingCount)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", pkg.ID).Delete(&models.Destination{}).Error; err != nil {
			return err
		}
		if err := tx.Where("package_id = ?", pkg.ID).Delete(&models.Facility{}).Error; err != nil {
			return err
		}
		if err := tx.Where("package_id = ?", pkg.ID).Delete(&models.GalleryImage{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&pkg).Error
	})
	return translateDBError(err, "package")
}

func (s *PackageService) Get(ctx context.Context, packageID uuid.UUID) (*models.TourPackage, error) {
	var pkg models.TourPackage
	err := s.db.WithContext(ctx).
		Preload("Destinations", func(db *gorm.DB) *gorm.DB { return db.Order("urutan ASC") }).
		Preload("Facilities", func(db *gorm.DB) *gorm.DB { return db.Order("urutan ASC") }).
		Preload("GalleryImages", func(db *gorm.DB) *gorm.DB { return db.Order("urutan ASC") }).
		First(&pkg, "id = ?", packageID).Error
	if err != nil {
		return nil, translateDBError(err, "package")
	}
	return &pkg, nil
}

func (s *PackageService) List(ctx context.Context, activeOnly bool) ([]models.TourPackage, error) {
	query := s.db.WithContext(ctx).
		Preload("Destinations", func(db *gorm.DB) *gorm.DB { return db.Order("urutan ASC") }).
		Preload("Facilities", func(db *gorm.DB) *gorm.DB { return db.Order("urutan ASC") }).
		Preload("GalleryImages", func(db *gorm.DB) *gorm.DB { return db.Order("urutan ASC") })
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var packages []models.TourPackage
	err := query.Order("created_at DESC").Find(&packages).Error
	return packages, err
}

func insertChildren(tx *gorm.DB, packageID uuid.UUID, destinations []string, facilities []FacilityInput) error {
	for i, nama := range destinations {
		destination := models.Destination{
			PackageID:     packageID,
			NamaDestinasi: nama,
			Urutan:        i,
		}
		if err := tx.Create(&destination).Error; err != nil {
			return err
		}
	}
	for i, in := range facilities {
		facility := models.Facility{
			PackageID:     packageID,
			NamaFasilitas: in.Nama,
			Icon:          in.Icon,
			Urutan:        i,
		}
		if err := tx.Create(&facility).Error; err != nil {
			return err
		}
	}
	return nil
}

// uploadGallery pushes each file to object storage and inserts a row per
// successful upload, starting at the given ordinal. Failures are skipped.
func (s *PackageService) uploadGallery(ctx context.Context, pkg *models.TourPackage, files []GalleryFile, startOrdinal int) []UploadFailure {
	var failures []UploadFailure
	ordinal := startOrdinal
	for _, file := range files {
		path := fmt.Sprintf("packages/%s/gallery/%s%s", pkg.ID, uuid.New().String(), filepath.Ext(file.Filename))
		url, err := s.storage.Put(path, file.Data)
		if err != nil {
			log.Printf("failed to upload gallery file %s: %v", file.Filename, err)
			failures = append(failures, UploadFailure{Filename: file.Filename, Error: err.Error()})
			continue
		}

		image := models.GalleryImage{
			PackageID: pkg.ID,
			ImageURL:  url,
			Urutan:    ordinal,
		}
		if err := s.db.WithContext(ctx).Create(&image).Error; err != nil {
			log.Printf("failed to record gallery file %s: %v", file.Filename, err)
			failures = append(failures, UploadFailure{Filename: file.Filename, Error: err.Error()})
			continue
		}
		ordinal++
	}
	return failures
}

func (s *PackageService) reload(ctx context.Context, pkg *models.TourPackage) error {
	reloaded, err := s.Get(ctx, pkg.ID)
	if err != nil {
		return err
	}
	*pkg = *reloaded
	return nil
}
