package analytics

import (
	"encoding/json"

	"github.com/2beens/trainpulse/internal/readiness"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// ReportCache keeps computed readiness reports out of the hot path for a
// short while. The engine itself stays stateless; caching lives here on
// the caller side, keyed by goal and activity history version.
type ReportCache struct {
	cache      *freecache.Cache
	expireSecs int
}

func NewReportCache(sizeMegabytes, expireSecs int) *ReportCache {
	megabyte := 1024 * 1024
	return &ReportCache{
		cache:      freecache.NewCache(sizeMegabytes * megabyte),
		expireSecs: expireSecs,
	}
}

func (c *ReportCache) Get(key string) (*readiness.Report, bool) {
	reportBytes, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}

	var report readiness.Report
	if err := json.Unmarshal(reportBytes, &report); err != nil {
		log.Errorf("failed to unmarshal cached readiness report [%s]: %s", key, err)
		return nil, false
	}

	return &report, true
}

func (c *ReportCache) Set(key string, report readiness.Report) {
	reportBytes, err := json.Marshal(report)
	if err != nil {
		log.Errorf("failed to marshal readiness report for cache [%s]: %s", key, err)
		return
	}

	if err := c.cache.Set([]byte(key), reportBytes, c.expireSecs); err != nil {
		log.Errorf("failed to write readiness report cache [%s]: %s", key, err)
	}
}
