package env

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	kvs, err := Read(strings.NewReader("B=2\nA=1\n# comment\nC=three\n"))
	require.NoError(t, err)
	require.Equal(t, KeyValues{
		{Key: "A", Value: "1"},
		{Key: "B", Value: "2"},
		{Key: "C", Value: "three"},
	}, kvs)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile("/does/not/exist.env")
	require.Error(t, err)
}
