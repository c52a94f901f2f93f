package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/logatro/config"
)

// The cache holds large read-only objects that many sessions share: parsed
// word lists and letter distributions. Loading a big word list takes a while,
// and every autoplay goroutine wants the same one.

type cache struct {
	sync.Mutex
	objects map[string]any
}

type loadFunc func(cfg *config.Config, key string) (any, error)

// GlobalObjectCache is our global object cache, of course.
var GlobalObjectCache *cache

var createOnce sync.Once

func (c *cache) get(cfg *config.Config, key string, loadFunc loadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting-obj-from-cache")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading-into-cache")
	obj, err := loadFunc(cfg, key)
	if err != nil {
		return nil, err
	}
	c.objects[key] = obj
	return obj, nil
}

func (c *cache) evict(key string) {
	c.Lock()
	defer c.Unlock()
	delete(c.objects, key)
}

func CreateGlobalObjectCache() {
	createOnce.Do(func() {
		GlobalObjectCache = &cache{objects: make(map[string]any)}
	})
}

// Load returns the object cached under key, calling loadFunc to create it
// the first time. A failed load is not cached.
func Load(cfg *config.Config, key string, loadFunc loadFunc) (any, error) {
	CreateGlobalObjectCache()
	return GlobalObjectCache.get(cfg, key, loadFunc)
}

// Evict drops key from the cache; the next Load reloads it.
func Evict(key string) {
	CreateGlobalObjectCache()
	GlobalObjectCache.evict(key)
}
