// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads local credentials before configuration is read.
//
// Two sources are supported. A .env file is loaded into the process
// environment so BESTREADS_* variables reach viper. A directory of
// plain-text files holds one value per file: the filename is the key and
// the trimmed contents are the value.
//
// Supported key files: openlibrary-contact.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// ContactKey names the file holding the contact email sent to Open Library
// in the User-Agent header.
const ContactKey = "openlibrary-contact"

// LoadEnv loads each existing file into the environment. Variables that are
// already set win over the file. Missing files are skipped.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading env file %s: %w", f, err)
		}
	}
	return nil
}

// Load reads every file in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error. Dotfiles, directories and
// empty files are skipped; unreadable files are logged and skipped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	out := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logrus.WithError(err).WithField("secret", name).Warn("could not read secret")
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			out[name] = v
		}
	}
	return out, nil
}

// Lookup returns fallback when it is set, else the secret for key.
func Lookup(s map[string]string, key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return s[key]
}
