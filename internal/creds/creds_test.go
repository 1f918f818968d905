package creds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeCredFile(t, `{"uname": "reader@example.com", "pword": "hunter2"}`)

	got, err := NewManager(path).Load()
	require.NoError(t, err)
	assert.Equal(t, Credentials{Username: "reader@example.com", Password: "hunter2"}, got)
}

func TestLoad_MissingFile(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "absent.json"))
	_, err := m.Load()
	assert.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeCredFile(t, `{"uname": `)
	_, err := NewManager(path).Load()
	assert.Error(t, err)
}

func TestLoad_MissingFields(t *testing.T) {
	for _, content := range []string{
		`{}`,
		`{"uname": "reader@example.com"}`,
		`{"pword": "hunter2"}`,
	} {
		path := writeCredFile(t, content)
		_, err := NewManager(path).Load()
		assert.Error(t, err, "content %s should be rejected", content)
	}
}
