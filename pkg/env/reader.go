// Package env reads environment files in dotenv format.
package env

import (
	"io"
	"os"
	"sort"

	"github.com/hashicorp/go-envparse"
)

type KeyValue struct {
	Key   string
	Value string
}

type KeyValues []KeyValue

// Read parses environment variables from r. Entries are returned in
// key order.
func Read(r io.Reader) (KeyValues, error) {
	m, err := envparse.Parse(r)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kvs := make(KeyValues, 0, len(m))
	for _, k := range keys {
		kvs = append(kvs, KeyValue{Key: k, Value: m[k]})
	}
	return kvs, nil
}

// ReadFile parses environment variables from the named file.
func ReadFile(name string) (KeyValues, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}
