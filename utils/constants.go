// File: utils/constants.go
package utils

import "time"

// SlotCachePrefix is the prefix used for Redis slot-listing cache keys.
const SlotCachePrefix = "slots:"

// SlotCacheTTL is the time-to-live for cached slot listings. Kept short so
// freshly booked sessions disappear from the list quickly.
const SlotCacheTTL = 30 * time.Second
