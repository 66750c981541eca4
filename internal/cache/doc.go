// Package cache holds the in-memory copy of every file the static handler has
// served, keyed by the resolved filesystem path. Entries carry the raw bytes,
// a strong ETag and the (mtime, size) snapshot taken when the file was read;
// the handler compares that snapshot against a fresh stat and replaces the
// entry wholesale when the file changed. The store itself knows nothing about
// HTTP and never touches the disk.
package cache
