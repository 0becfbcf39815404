// Package file provides a file-based config.DataFetcher.
//
// The file is read when the constructor returned by NewFetcher runs and the
// bytes are cached, so every Fetch sees the same document for the lifetime of
// the application. WithExpandEnv substitutes environment variables first:
//
//	fetcher, err := file.NewFetcher("/etc/app/config.yaml", file.WithExpandEnv())()
//	if err != nil {
//	    // file not found, permission denied, path is a directory, ...
//	}
//	data, err := fetcher.Fetch()
//
// Use errors.Is(err, file.ErrPathIsDirectory) to detect directory paths.
package file
