// Package repositories provides the persistence layer for locally cached
// listening data. Schema management lives in internal/shared's migration
// runner; repositories only read and write rows.
package repositories
