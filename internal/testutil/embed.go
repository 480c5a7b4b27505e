package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
)

// TestdataFS holds the embedded sample documents.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	data, err := fs.ReadFile(TestdataFS, path.Join("testdata", name))
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// Samples returns the names of the embedded .waml documents in order.
func Samples() []string {
	names, err := fs.Glob(TestdataFS, "testdata/*.waml")
	if err != nil {
		panic(err)
	}
	for i, n := range names {
		names[i] = path.Base(n)
	}
	slices.Sort(names)
	return names
}
