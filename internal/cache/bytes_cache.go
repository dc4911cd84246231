package cache

import (
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

var _ Cache = (*BytesCache)(nil)

// BytesCache keeps serialized responses in a fixed size, GC friendly segment
type BytesCache struct {
	mainCache *freecache.Cache
}

func NewBytesCache(cacheSizeMegabytes int) *BytesCache {
	megabyte := 1024 * 1024
	return &BytesCache{
		mainCache: freecache.NewCache(cacheSizeMegabytes * megabyte),
	}
}

func (bc *BytesCache) Get(key string) ([]byte, bool) {
	value, err := bc.mainCache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return value, true
}

func (bc *BytesCache) Set(key string, value []byte, ttl time.Duration) bool {
	if err := bc.mainCache.Set([]byte(key), value, int(ttl.Seconds())); err != nil {
		log.Debugf("cache set [%s]: %s", key, err)
		return false
	}
	return true
}

func (bc *BytesCache) Clear() {
	bc.mainCache.Clear()
}
