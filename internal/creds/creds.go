// Package creds loads Kindle account credentials from a JSON file.
//
// The file format matches the original tracker's credential store:
//
//	{"uname": "reader@example.com", "pword": "hunter2"}
//
// Credentials never reach the core; only the snapshot client consumes
// them.
package creds

import (
	"encoding/json"
	"fmt"
	"os"
)

// Credentials holds a resolved username/password pair.
type Credentials struct {
	Username string
	Password string
}

// Manager resolves credentials from a configured file path on demand.
type Manager struct {
	path string
}

// NewManager creates a manager for the credential file at path.
// The file is not read until Load is called.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

type credentialFile struct {
	Uname string `json:"uname"`
	Pword string `json:"pword"`
}

// Load reads and validates the credential file.
func (m *Manager) Load() (Credentials, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return Credentials{}, fmt.Errorf("read credential file: %w", err)
	}

	var cf credentialFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return Credentials{}, fmt.Errorf("parse credential file %s: %w", m.path, err)
	}

	if cf.Uname == "" || cf.Pword == "" {
		return Credentials{}, fmt.Errorf("credential file %s: uname and pword must both be set", m.path)
	}

	return Credentials{Username: cf.Uname, Password: cf.Pword}, nil
}
