package client

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/minicommerce/order-service/internal/cache"
	"github.com/minicommerce/order-service/internal/models"
)

// Cache key helpers
func userKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

func productKey(code string) string {
	return fmt.Sprintf("product:%s", code)
}

// CachedUserClient wraps a UserClient with a redis cache. Cache failures
// are logged and fall through to the live lookup, never failing the call.
type CachedUserClient struct {
	client *UserClient
	cache  *cache.RedisCache
}

func NewCachedUserClient(client *UserClient, cache *cache.RedisCache) *CachedUserClient {
	return &CachedUserClient{client: client, cache: cache}
}

func (c *CachedUserClient) GetUser(ctx context.Context, userID string) (*models.UserProfile, error) {
	cacheKey := userKey(userID)

	var profile models.UserProfile
	err := c.cache.Get(ctx, cacheKey, &profile)
	if err == nil {
		return &profile, nil
	}
	if err != redis.Nil {
		log.Printf("⚠️ Cache error: %v", err)
	}

	p, err := c.client.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, cacheKey, p); err != nil {
		log.Printf("⚠️ Failed to cache user %s: %v", userID, err)
	}

	return p, nil
}

// CachedProductClient wraps a ProductClient with a redis cache.
type CachedProductClient struct {
	client *ProductClient
	cache  *cache.RedisCache
}

func NewCachedProductClient(client *ProductClient, cache *cache.RedisCache) *CachedProductClient {
	return &CachedProductClient{client: client, cache: cache}
}

func (c *CachedProductClient) GetProduct(ctx context.Context, productCode string) (*models.ProductInfo, error) {
	cacheKey := productKey(productCode)

	var product models.ProductInfo
	err := c.cache.Get(ctx, cacheKey, &product)
	if err == nil {
		return &product, nil
	}
	if err != redis.Nil {
		log.Printf("⚠️ Cache error: %v", err)
	}

	p, err := c.client.GetProduct(ctx, productCode)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, cacheKey, p); err != nil {
		log.Printf("⚠️ Failed to cache product %s: %v", productCode, err)
	}

	return p, nil
}
