package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafidhan/tripnesia/internal/helpers"
	"github.com/rafidhan/tripnesia/internal/middleware"
	"github.com/rafidhan/tripnesia/internal/services"
	"github.com/rafidhan/tripnesia/internal/storage"
)

func parsePackageForm(c *gin.Context) (services.PackageInput, error) {
	harga, err := helpers.StringToInt(c.DefaultPostForm("harga", "0"))
	if err != nil {
		return services.PackageInput{}, fmt.Errorf("invalid harga")
	}
	minimalPenumpang, err := helpers.StringToInt(c.DefaultPostForm("minimal_penumpang", "1"))
	if err != nil {
		return services.PackageInput{}, fmt.Errorf("invalid minimal penumpang")
	}

	return services.PackageInput{
		NamaPaket:        c.PostForm("nama_paket"),
		Lokasi:           c.PostForm("lokasi"),
		Durasi:           c.PostForm("durasi"),
		TipePaket:        c.PostForm("tipe_paket"),
		Harga:            harga,
		MinimalPenumpang: minimalPenumpang,
		NamaDaerah:       c.PostForm("nama_daerah"),
		IsActive:         c.DefaultPostForm("is_active", "true") == "true",
	}, nil
}

func collectIndexedForm(c *gin.Context, field string) []string {
	var values []string
	for i := 0; ; i++ {
		value := c.PostForm(fmt.Sprintf("%s[%d]", field, i))
		if value == "" {
			break
		}
		values = append(values, value)
	}
	return values
}

func collectFacilities(c *gin.Context) []services.FacilityInput {
	var facilities []services.FacilityInput
	for i := 0; ; i++ {
		nama := c.PostForm(fmt.Sprintf("facilities[%d]", i))
		if nama == "" {
			break
		}
		facilities = append(facilities, services.FacilityInput{
			Nama: nama,
			Icon: c.PostForm(fmt.Sprintf("facility_icons[%d]", i)),
		})
	}
	return facilities
}

func collectGalleryFiles(c *gin.Context) ([]services.GalleryFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	var files []services.GalleryFile
	for _, fileHeader := range form.File["gallery"] {
		data, _, err := helpers.ReadUploadedFile(fileHeader)
		if err != nil {
			return nil, err
		}
		files = append(files, services.GalleryFile{Filename: fileHeader.Filename, Data: data})
	}
	return files, nil
}

func uploadPackageAsset(objectStorage storage.ObjectStorage, fileHeader *multipart.FileHeader, config helpers.UploadConfig) (string, error) {
	data, ext, err := helpers.ReadUploadedFile(fileHeader, config)
	if err != nil {
		return "", err
	}
	return objectStorage.Put(fmt.Sprintf("packages/assets/%s%s", uuid.New().String(), ext), data)
}

// applyAssetUploads fills GambarURL/PosterURL/BrosurURL from the form files
// when present. A missing file leaves the current value alone.
func applyAssetUploads(c *gin.Context, objectStorage storage.ObjectStorage, in *services.PackageInput) error {
	assets := []struct {
		field  string
		target *string
		config helpers.UploadConfig
	}{
		{"gambar", &in.GambarURL, helpers.DefaultImageUploadConfig},
		{"poster", &in.PosterURL, helpers.DefaultImageUploadConfig},
		{"brosur", &in.BrosurURL, helpers.DefaultDocumentUploadConfig},
	}

	for _, asset := range assets {
		fileHeader, err := c.FormFile(asset.field)
		if err != nil {
			continue
		}
		url, err := uploadPackageAsset(objectStorage, fileHeader, asset.config)
		if err != nil {
			return fmt.Errorf("%s: %v", asset.field, err)
		}
		*asset.target = url
	}
	return nil
}

func CreatePackage(c *gin.Context) {
	in, err := parsePackageForm(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	objectStorage := middleware.GetStorage(c)
	if objectStorage == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Object storage not found.")
		return
	}

	if err := applyAssetUploads(c, objectStorage, &in); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	galleryFiles, err := collectGalleryFiles(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	pkg, failures, err := services.NewPackageService(gormDB, objectStorage).Create(
		c.Request.Context(),
		in,
		collectIndexedForm(c, "destinations"),
		collectFacilities(c),
		galleryFiles,
	)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Package created successfully.",
		"package":         pkg,
		"upload_failures": failures,
	})
}

func UpdatePackage(c *gin.Context) {
	packageID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid package ID.")
		return
	}

	in, err := parsePackageForm(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	objectStorage := middleware.GetStorage(c)
	if objectStorage == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Object storage not found.")
		return
	}

	// Carry the current asset URLs forward unless new files replace them.
	current, err := services.NewPackageService(gormDB, objectStorage).Get(c.Request.Context(), packageID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}
	in.GambarURL = current.GambarURL
	in.PosterURL = current.PosterURL
	in.BrosurURL = current.BrosurURL

	if err := applyAssetUploads(c, objectStorage, &in); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	galleryFiles, err := collectGalleryFiles(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	pkg, failures, err := services.NewPackageService(gormDB, objectStorage).Update(
		c.Request.Context(),
		packageID,
		in,
		collectIndexedForm(c, "destinations"),
		collectFacilities(c),
		galleryFiles,
		collectIndexedForm(c, "kept_gallery_urls"),
	)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Package updated successfully.",
		"package":         pkg,
		"upload_failures": failures,
	})
}

func DeletePackage(c *gin.Context) {
	packageID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid package ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	objectStorage := middleware.GetStorage(c)
	if objectStorage == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Object storage not found.")
		return
	}

	if err := services.NewPackageService(gormDB, objectStorage).Delete(c.Request.Context(), packageID); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Package deleted successfully."})
}

func GetPackage(c *gin.Context) {
	packageID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid package ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	pkg, err := services.NewPackageService(gormDB, middleware.GetStorage(c)).Get(c.Request.Context(), packageID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg)
}

func ListPackages(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	activeOnly := c.DefaultQuery("active_only", "false") == "true"

	packages, err := services.NewPackageService(gormDB, middleware.GetStorage(c)).List(c.Request.Context(), activeOnly)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving packages.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"packages": packages})
}
