package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafidhan/tripnesia/internal/helpers"
	"github.com/rafidhan/tripnesia/internal/models"
	"github.com/rafidhan/tripnesia/internal/services"
)

func packageInput() services.PackageInput {
	return services.PackageInput{
		NamaPaket:        "Paket Dieng Culture",
		Lokasi:           "Jawa Tengah",
		Durasi:           "2 hari 1 malam",
		TipePaket:        models.PackageTypeEkonomis,
		Harga:            850_000,
		MinimalPenumpang: 4,
		NamaDaerah:       "Dieng",
		IsActive:         true,
	}
}

func TestPackageCreateWithChildren(t *testing.T) {
	db := openTestDB(t)
	store := newFakeStorage()
	svc := services.NewPackageService(db, store)

	destinations := []string{"Kawah Sikidang", "Telaga Warna", "Candi Arjuna"}
	facilities := []services.FacilityInput{
		{Nama: "Bus AC", Icon: "bus"},
		{Nama: "Makan 3x", Icon: "utensils"},
	}
	gallery := []services.GalleryFile{
		{Filename: "sunrise.jpg", Data: []byte("jpg-bytes")},
		{Filename: "kawah.png", Data: []byte("png-bytes")},
	}

	pkg, failures, err := svc.Create(context.Background(), packageInput(), destinations, facilities, gallery)
	require.NoError(t, err)
	assert.Empty(t, failures)

	require.Len(t, pkg.Destinations, 3)
	assert.Equal(t, "Kawah Sikidang", pkg.Destinations[0].NamaDestinasi)
	assert.Equal(t, 0, pkg.Destinations[0].Urutan)
	assert.Equal(t, "Candi Arjuna", pkg.Destinations[2].NamaDestinasi)

	require.Len(t, pkg.Facilities, 2)
	assert.Equal(t, "bus", pkg.Facilities[0].Icon)

	require.Len(t, pkg.GalleryImages, 2)
	assert.Len(t, store.objects, 2)
}

func TestPackageCreateValidation(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewPackageService(db, newFakeStorage())
	ctx := context.Background()

	var validationErr *helpers.ValidationError

	in := packageInput()
	in.NamaPaket = ""
	_, _, err := svc.Create(ctx, in, nil, nil, nil)
	assert.ErrorAs(t, err, &validationErr)

	in = packageInput()
	in.TipePaket = "Backpacker"
	_, _, err = svc.Create(ctx, in, nil, nil, nil)
	assert.ErrorAs(t, err, &validationErr)

	in = packageInput()
	in.Harga = 0
	_, _, err = svc.Create(ctx, in, nil, nil, nil)
	assert.ErrorAs(t, err, &validationErr)

	in = packageInput()
	in.MinimalPenumpang = 0
	_, _, err = svc.Create(ctx, in, nil, nil, nil)
	assert.ErrorAs(t, err, &validationErr)

	var count int64
	db.Model(&models.TourPackage{}).Count(&count)
	assert.Zero(t, count)
}

func TestPackageUpdateReplacesChildrenWholesale(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewPackageService(db, newFakeStorage())
	ctx := context.Background()

	pkg, _, err := svc.Create(ctx, packageInput(),
		[]string{"X", "Y", "Z"},
		[]services.FacilityInput{{Nama: "Bus", Icon: "bus"}},
		nil)
	require.NoError(t, err)
	oldIDs := map[uuid.UUID]bool{}
	for _, d := range pkg.Destinations {
		oldIDs[d.ID] = true
	}

	updated, failures, err := svc.Update(ctx, pkg.ID, packageInput(),
		[]string{"A", "B"},
		[]services.FacilityInput{{Nama: "Minibus", Icon: "van"}},
		nil, nil)
	require.NoError(t, err)
	assert.Empty(t, failures)

	require.Len(t, updated.Destinations, 2)
	assert.Equal(t, "A", updated.Destinations[0].NamaDestinasi)
	assert.Equal(t, "B", updated.Destinations[1].NamaDestinasi)
	for _, d := range updated.Destinations {
		assert.False(t, oldIDs[d.ID], "replaced children get new identifiers")
	}

	require.Len(t, updated.Facilities, 1)
	assert.Equal(t, "Minibus", updated.Facilities[0].NamaFasilitas)

	// No orphaned rows survive the replace.
	var destCount int64
	db.Model(&models.Destination{}).Count(&destCount)
	assert.Equal(t, int64(2), destCount)
}

func TestPackageUpdateGalleryDiff(t *testing.T) {
	db := openTestDB(t)
	store := newFakeStorage()
	svc := services.NewPackageService(db, store)
	ctx := context.Background()

	pkg, _, err := svc.Create(ctx, packageInput(), nil, nil, []services.GalleryFile{
		{Filename: "a.jpg", Data: []byte("a")},
		{Filename: "b.jpg", Data: []byte("b")},
		{Filename: "c.jpg", Data: []byte("c")},
	})
	require.NoError(t, err)
	require.Len(t, pkg.GalleryImages, 3)

	keep := []string{pkg.GalleryImages[1].ImageURL}
	updated, failures, err := svc.Update(ctx, pkg.ID, packageInput(), nil, nil,
		[]services.GalleryFile{{Filename: "d.jpg", Data: []byte("d")}}, keep)
	require.NoError(t, err)
	assert.Empty(t, failures)

	require.Len(t, updated.GalleryImages, 2)
	assert.Equal(t, keep[0], updated.GalleryImages[0].ImageURL)
	assert.Greater(t, updated.GalleryImages[1].Urutan, updated.GalleryImages[0].Urutan)

	// The two dropped images were removed from object storage too.
	assert.Len(t, store.deleted, 2)
}

func TestPackageUpdateEmptyKeptListPurgesGallery(t *testing.T) {
	db := openTestDB(t)
	store := newFakeStorage()
	svc := services.NewPackageService(db, store)
	ctx := context.Background()

	pkg, _, err := svc.Create(ctx, packageInput(), nil, nil, []services.GalleryFile{
		{Filename: "a.jpg", Data: []byte("a")},
		{Filename: "b.jpg", Data: []byte("b")},
	})
	require.NoError(t, err)

	updated, _, err := svc.Update(ctx, pkg.ID, packageInput(), nil, nil, nil, nil)
	require.NoError(t, err)

	assert.Empty(t, updated.GalleryImages)
	assert.Len(t, store.deleted, 2)
	assert.Empty(t, store.objects)
}

func TestPackageGalleryUploadIsBestEffort(t *testing.T) {
	db := openTestDB(t)
	store := newFakeStorage()
	store.failFirst = 1
	svc := services.NewPackageService(db, store)

	pkg, failures, err := svc.Create(context.Background(), packageInput(), nil, nil,
		[]services.GalleryFile{
			{Filename: "broken.jpg", Data: []byte("x")},
			{Filename: "fine.jpg", Data: []byte("y")},
		})
	require.NoError(t, err, "a failed gallery file must not fail the operation")

	require.Len(t, failures, 1)
	assert.Equal(t, "broken.jpg", failures[0].Filename)
	require.Len(t, pkg.GalleryImages, 1)
	assert.Equal(t, 0, pkg.GalleryImages[0].Urutan)
}

func TestPackageDeleteBlockedByBookings(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewPackageService(db, newFakeStorage())
	ctx := context.Background()

	pkg := seedPackage(t, db, 500_000, 1)
	_, _, err := services.NewBookingService(db).Create(ctx, bookingInput(pkg.ID, 2))
	require.NoError(t, err)

	var conflictErr *helpers.ConflictError
	assert.ErrorAs(t, svc.Delete(ctx, pkg.ID), &conflictErr)

	var count int64
	db.Model(&models.TourPackage{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestPackageDeleteRemovesChildren(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewPackageService(db, newFakeStorage())
	ctx := context.Background()

	pkg, _, err := svc.Create(ctx, packageInput(),
		[]string{"A"},
		[]services.FacilityInput{{Nama: "Bus", Icon: "bus"}},
		[]services.GalleryFile{{Filename: "a.jpg", Data: []byte("a")}})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, pkg.ID))

	var pkgCount, destCount, facCount, galCount int64
	db.Unscoped().Model(&models.TourPackage{}).Count(&pkgCount)
	db.Model(&models.Destination{}).Count(&destCount)
	db.Model(&models.Facility{}).Count(&facCount)
	db.Model(&models.GalleryImage{}).Count(&galCount)
	assert.Zero(t, pkgCount)
	assert.Zero(t, destCount)
	assert.Zero(t, facCount)
	assert.Zero(t, galCount)

	var notFoundErr *helpers.NotFoundError
	assert.ErrorAs(t, svc.Delete(ctx, pkg.ID), &notFoundErr)
}

func TestPackageListActiveOnly(t *testing.T) {
	db := openTestDB(t)
	svc := services.NewPackageService(db, newFakeStorage())
	ctx := context.Background()

	active := packageInput()
	_, _, err := svc.Create(ctx, active, nil, nil, nil)
	require.NoError(t, err)

	inactive := packageInput()
	inactive.NamaPaket = "Paket Arsip"
	inactive.IsActive = false
	_, _, err = svc.Create(ctx, inactive, nil, nil, nil)
	require.NoError(t, err)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Paket Dieng Culture", visible[0].NamaPaket)
}
