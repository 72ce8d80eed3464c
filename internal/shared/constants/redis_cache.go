package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs.
// Pattern: studyseat:{module}:{operation}:{identifier}

const CachePrefix = "studyseat"

// Shop browse data changes rarely; seat maps a little more often.
const (
	TTLShopList   = 10 * time.Minute
	TTLShopDetail = 10 * time.Minute
	TTLSeatMap    = 5 * time.Minute
)

const (
	CacheKeyShopList = CachePrefix + ":shops:list"
)

func CacheKeyShopDetail(shopID string) string {
	return fmt.Sprintf("%s:shops:detail:%s", CachePrefix, shopID)
}

func CacheKeySeatMap(shopID, zone string) string {
	if zone == "" {
		zone = "all"
	}
	return fmt.Sprintf("%s:seats:shop:%s:zone:%s", CachePrefix, shopID, zone)
}

// CachePatternSeatMap matches every zone variant for one shop.
func CachePatternSeatMap(shopID string) string {
	return fmt.Sprintf("%s:seats:shop:%s:zone:*", CachePrefix, shopID)
}
