// Package scanner inventories the CSV sources under a resources directory.
//
// The scanner reports each CSV file with its size and SHA-256 checksum so a
// dry run can show what would be loaded and which files no mapping names.
// It works through filesystem.FileSystemProvider, enabling both production
// use with the OS filesystem and testing with in-memory filesystems.
package scanner
