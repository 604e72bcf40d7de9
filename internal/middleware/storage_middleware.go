package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/rafidhan/tripnesia/internal/storage"
)

func StorageMiddleware(objectStorage storage.ObjectStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("storage", objectStorage)
		c.Next()
	}
}

func GetStorage(c *gin.Context) storage.ObjectStorage {
	value, exists := c.Get("storage")
	if !exists {
		return nil
	}
	return value.(storage.ObjectStorage)
}
