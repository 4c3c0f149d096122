// Package filesystem provides the file access used to read CSV sources.
//
// Key interfaces:
//   - FileSystemProvider: opens files as byte streams and reports metadata
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing, tracking open handles
package filesystem
