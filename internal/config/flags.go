package config

import (
	"flag"
	"os"
)

// parses CLI flags for the books ingestion subcommand
func ParseBooksFlags() Flags {
	args := os.Args[2:]

	fs := flag.NewFlagSet("books", flag.ExitOnError)
	path := fs.String("path", "./resources/books.json", "path to books JSON file")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{Path: *path}
}
