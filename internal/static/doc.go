// Package static serves files from a single public directory through the
// in-memory cache store. Each request is resolved to a path inside the root,
// revalidated against the file's current (mtime, size), answered with 304 when
// the client's validators still match, and otherwise written raw or streamed
// through brotli/gzip depending on Accept-Encoding. Every failure ends in a
// concrete status code with either a custom <status>.html page or a short
// plain-text message.
package static
