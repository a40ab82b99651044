// Package refresh rebuilds the usage index on a cron schedule.
package refresh
