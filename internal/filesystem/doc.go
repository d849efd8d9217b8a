/*
Package filesystem wraps os.Stat, os.Open and os.Remove with retries for
NFS stale file handle errors (ESTALE).

The card cache is often a shared NFS volume between replicas. A card purged
or rewritten by one replica can leave another holding a stale handle for a
short time; retrying with backoff rides that out. All other errors are
returned immediately.

	info, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig())

Defaults are 3 retries with backoff starting at 50ms and capped at 500ms.
Retry counters are labeled with the volume resolved by [VolumeResolver]:

	filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(map[string]string{
	    "cache":    config.CacheDir,
	    "database": config.DatabaseDir,
	}))
*/
package filesystem
