//go:build !unix

package export

import (
	"os"
)

// checkWritable probes dir by creating and removing a temporary file
func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".logscope-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
