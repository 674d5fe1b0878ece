package gfx

import (
	"io"

	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/hal/internal/utils"
	"golang.org/x/exp/slog"
)

// BarrierCacheCreateFlags indicate specific cache behaviors to activate or deactivate
type BarrierCacheCreateFlags int32

var barrierCacheCreateFlagsMapping = common.NewFlagStringMapping[BarrierCacheCreateFlags]()

func (f BarrierCacheCreateFlags) Register(str string) {
	barrierCacheCreateFlagsMapping.Register(f, str)
}
func (f BarrierCacheCreateFlags) String() string {
	return barrierCacheCreateFlagsMapping.FlagsToString(f)
}

const (
	// BarrierCacheExternallySynchronized ensures that the cache will not be synchronized internally.
	// The consumer must guarantee it is used from only one thread at a time.
	BarrierCacheExternallySynchronized BarrierCacheCreateFlags = 1 << iota
)

func init() {
	BarrierCacheExternallySynchronized.Register("BarrierCacheExternallySynchronized")
}

// BarrierCacheCreateOptions contains optional settings when creating a BarrierCache
type BarrierCacheCreateOptions struct {
	Flags BarrierCacheCreateFlags
}

// BarrierCache hands out one shared barrier per distinct info, so a device only ever holds a
// single descriptor for each transition it performs
type BarrierCache struct {
	logger *slog.Logger
	mutex  utils.OptionalRWMutex

	globalBarriers  *swiss.Map[string, *GlobalBarrier]
	textureBarriers *swiss.Map[string, *TextureBarrier]
}

func NewBarrierCache(logger *slog.Logger, options BarrierCacheCreateOptions) *BarrierCache {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard))
	}

	return &BarrierCache{
		logger: logger,
		mutex: utils.OptionalRWMutex{
			UseMutex: options.Flags&BarrierCacheExternallySynchronized == 0,
		},
		globalBarriers:  swiss.NewMap[string, *GlobalBarrier](42),
		textureBarriers: swiss.NewMap[string, *TextureBarrier](42),
	}
}

// GlobalBarrier retrieves the cached barrier for the provided info, building it on first use
func (c *BarrierCache) GlobalBarrier(info GlobalBarrierInfo) *GlobalBarrier {
	key := info.key()

	c.mutex.RLock()
	barrier, ok := c.globalBarriers.Get(key)
	c.mutex.RUnlock()
	if ok {
		return barrier
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	barrier, ok = c.globalBarriers.Get(key)
	if ok {
		return barrier
	}

	c.logger.Debug("BarrierCache::GlobalBarrier",
		slog.String("PrevAccesses", info.PrevAccesses.String()),
		slog.String("NextAccesses", info.NextAccesses.String()),
	)

	barrier = NewGlobalBarrier(info)
	c.globalBarriers.Put(key, barrier)
	return barrier
}

// TextureBarrier retrieves the cached barrier for the provided info, building it on first use
func (c *BarrierCache) TextureBarrier(info TextureBarrierInfo) *TextureBarrier {
	key := info.key()

	c.mutex.RLock()
	barrier, ok := c.textureBarriers.Get(key)
	c.mutex.RUnlock()
	if ok {
		return barrier
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	barrier, ok = c.textureBarriers.Get(key)
	if ok {
		return barrier
	}

	c.logger.Debug("BarrierCache::TextureBarrier",
		slog.String("PrevAccesses", info.PrevAccesses.String()),
		slog.String("NextAccesses", info.NextAccesses.String()),
		slog.Bool("DiscardContents", info.DiscardContents),
	)

	barrier = NewTextureBarrier(info)
	c.textureBarriers.Put(key, barrier)
	return barrier
}

// Len returns the number of distinct barriers currently cached
func (c *BarrierCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.globalBarriers.Count() + c.textureBarriers.Count()
}

// Clear drops every cached barrier. Barriers already handed out remain valid.
func (c *BarrierCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.logger.Debug("BarrierCache::Clear",
		slog.Int("GlobalBarriers", c.globalBarriers.Count()),
		slog.Int("TextureBarriers", c.textureBarriers.Count()),
	)

	c.globalBarriers = swiss.NewMap[string, *GlobalBarrier](42)
	c.textureBarriers = swiss.NewMap[string, *TextureBarrier](42)
}
