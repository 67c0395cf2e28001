// Package routing classifies request paths so that errors, CORS and the ops
// guard can treat storefront JSON, back-office pages and probes differently.
package routing

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"
)

type RouteClass string

const (
	RouteClassUI          RouteClass = "ui"
	RouteClassAuthn       RouteClass = "authn"
	RouteClassInternalAPI RouteClass = "internal_api"
	RouteClassPublicAPI   RouteClass = "public_api"
	RouteClassOps         RouteClass = "ops"
	RouteClassStatic      RouteClass = "static"
	RouteClassDevOnly     RouteClass = "dev_only"
)

var knownClasses = map[RouteClass]struct{}{
	RouteClassUI:          {},
	RouteClassAuthn:       {},
	RouteClassInternalAPI: {},
	RouteClassPublicAPI:   {},
	RouteClassOps:         {},
	RouteClassStatic:      {},
	RouteClassDevOnly:     {},
}

// IsJSON reports whether errors on routes of this class are answered with a
// JSON envelope rather than a page.
func (c RouteClass) IsJSON() bool {
	return c == RouteClassInternalAPI || c == RouteClassPublicAPI
}

const (
	allowlistVersion  = 1
	defaultEntrypoint = "server"
	allowlistRelPath  = "config/routing/allowlist.yaml"
)

var ErrAllowlistNotFound = errors.New("routing allowlist not found")

type AllowlistRule struct {
	Prefix string     `yaml:"prefix"`
	Class  RouteClass `yaml:"class"`
}

type allowlistFile struct {
	Version     int                        `yaml:"version"`
	Entrypoints map[string][]AllowlistRule `yaml:"entrypoints"`
}

// DefaultAllowlistPath is $ROUTING_ALLOWLIST_PATH, or the allowlist under
// the nearest go.mod root, or the bare relative path.
func DefaultAllowlistPath() string {
	if p := strings.TrimSpace(os.Getenv("ROUTING_ALLOWLIST_PATH")); p != "" {
		return p
	}
	wd, err := os.Getwd()
	if err != nil {
		return filepath.FromSlash(allowlistRelPath)
	}
	for dir := wd; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			candidate := filepath.Join(dir, filepath.FromSlash(allowlistRelPath))
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
			break
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}
	return filepath.FromSlash(allowlistRelPath)
}

// LoadAllowlist reads the rules of one entrypoint. An empty path uses
// DefaultAllowlistPath and an empty entrypoint means "server".
func LoadAllowlist(path, entrypoint string) ([]AllowlistRule, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultAllowlistPath()
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(ErrAllowlistNotFound, path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read allowlist")
	}
	return ParseAllowlist(raw, entrypoint)
}

// ParseAllowlist decodes and validates an allowlist document.
func ParseAllowlist(raw []byte, entrypoint string) ([]AllowlistRule, error) {
	var file allowlistFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrap(err, "decode allowlist")
	}
	if file.Version != allowlistVersion {
		return nil, errors.Errorf("unsupported allowlist version: %d", file.Version)
	}
	if strings.TrimSpace(entrypoint) == "" {
		entrypoint = defaultEntrypoint
	}
	rules, ok := file.Entrypoints[entrypoint]
	if !ok {
		return nil, errors.Errorf("entrypoint %q not found in allowlist", entrypoint)
	}

	seen := make(map[string]int, len(rules))
	for i := range rules {
		r := &rules[i]
		r.Prefix = strings.TrimSpace(r.Prefix)
		switch {
		case r.Prefix == "":
			return nil, errors.Errorf("allowlist rule[%d]: empty prefix", i)
		case !strings.HasPrefix(r.Prefix, "/"):
			return nil, errors.Errorf("allowlist rule[%d]: prefix must start with '/': %q", i, r.Prefix)
		}
		if _, ok := knownClasses[r.Class]; !ok {
			return nil, errors.Errorf("allowlist rule[%d]: unknown class: %q", i, r.Class)
		}
		if j, dup := seen[r.Prefix]; dup {
			return nil, errors.Errorf("allowlist rule[%d]: prefix %q already declared by rule[%d]", i, r.Prefix, j)
		}
		seen[r.Prefix] = i
	}
	return rules, nil
}
