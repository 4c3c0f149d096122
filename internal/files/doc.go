// Package files groups the file handling used to read CSV seed sources.
//
// Sub-packages:
//   - filesystem: filesystem abstraction with OS and in-memory implementations
//   - scanner: inventory of the CSV files under a resources directory
package files
