// Package repositories implements SQLite persistence for export runs.
//
// Each run is stored as one row in exports plus its video and comment rows, keyed by
// the run id and the row's position so the two sheets read back in their original order.
// A database file may hold any number of runs.
//
// Key Implementations:
//   - [ExportRepository] : saves a [models.ChannelExport] atomically and reads it back
package repositories
