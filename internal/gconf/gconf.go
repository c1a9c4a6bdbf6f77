// Package gconf is a small read-only configuration store addressed by slash
// separated key paths such as /system/systemui/splash/bootup_image.
//
// The backing file is YAML. Keys may be written either nested:
//
//	system:
//	  systemui:
//	    splash:
//	      bootup_image: /usr/share/splash/bootup.png
//
// or flat, using the full key path as a single mapping key:
//
//	/system/systemui/splash/bootup_image: /usr/share/splash/bootup.png
//
// Flat keys win when both forms are present.
package gconf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable that overrides DefaultPath.
const EnvVar = "SPLASH_GCONF"

// DefaultPath is read when neither a flag nor EnvVar names a file.
const DefaultPath = "/etc/systemui/splash.yaml"

// Client reads string values by key path.
type Client struct {
	root map[string]any
}

// Empty returns a client with no keys.
func Empty() *Client {
	return &Client{root: map[string]any{}}
}

// Open loads path. A missing file yields an empty client.
func Open(path string) (*Client, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("gconf: read %s: %w", path, err)
	}
	return Parse(data)
}

// Default resolves the file from EnvVar or DefaultPath and opens it.
func Default() (*Client, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		path = DefaultPath
	}
	return Open(path)
}

// Parse builds a client from YAML.
func Parse(data []byte) (*Client, error) {
	root := map[string]any{}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("gconf: parse: %w", err)
	}
	if root == nil {
		root = map[string]any{}
	}
	return &Client{root: root}, nil
}

// GetString returns the string stored at key. ok is false when the key is
// unset, empty, or not a scalar string.
func (c *Client) GetString(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	if v, ok := c.root[key]; ok {
		return asString(v)
	}

	var cur any = c.root
	for _, part := range strings.Split(strings.Trim(key, "/"), "/") {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		cur, ok = m[part]
		if !ok {
			return "", false
		}
	}
	return asString(cur)
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
