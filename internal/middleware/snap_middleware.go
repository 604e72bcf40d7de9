package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/midtrans/midtrans-go/snap"
)

func MidtransMiddleware(snapClient *snap.Client, serverKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("snap_client", snapClient)
		c.Set("midtrans_server_key", serverKey)
		c.Next()
	}
}

func GetSnapClient(c *gin.Context) *snap.Client {
	client, exists := c.Get("snap_client")
	if !exists {
		return nil
	}
	return client.(*snap.Client)
}

func GetMidtransServerKey(c *gin.Context) string {
	key, exists := c.Get("midtrans_server_key")
	if !exists {
		return ""
	}
	return key.(string)
}
