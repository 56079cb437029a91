// Package record extracts predefined fields from parsed log entries.
//
// A Builder decorates an ast.Build target. Every event is forwarded to the
// target, so the container keeps the full entry, while the Builder fills a
// Record with the entry's timestamp, level, message, logger and caller as
// they are built. Which fields are predefined is decided by Settings,
// compiled once from settings.Settings and shared between goroutines.
//
// The Record is an index over the container: fields it claimed are hidden
// from Fields but still listed by FieldsForSearch.
package record
