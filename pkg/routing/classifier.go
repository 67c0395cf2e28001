package routing

import (
	"sort"
	"strings"
)

// Classifier resolves a path to the class of the longest matching rule.
type Classifier struct {
	rules []AllowlistRule
}

func NewClassifier(rules []AllowlistRule) *Classifier {
	c := &Classifier{rules: make([]AllowlistRule, 0, len(rules))}
	for _, r := range rules {
		if r.Prefix = strings.TrimSpace(r.Prefix); r.Prefix != "" {
			c.rules = append(c.rules, r)
		}
	}
	sort.SliceStable(c.rules, func(i, j int) bool {
		return len(c.rules[i].Prefix) > len(c.rules[j].Prefix)
	})
	return c
}

// MatchAllowlist reports the class of the rule covering path, if any.
func (c *Classifier) MatchAllowlist(path string) (RouteClass, bool) {
	for _, r := range c.rules {
		if HasPathPrefixOnBoundary(path, r.Prefix) {
			return r.Class, true
		}
	}
	return "", false
}

// ClassifyPath falls back to internal_api for /api and any /<module>/api
// tree without a rule, and to ui for everything else.
func (c *Classifier) ClassifyPath(path string) RouteClass {
	if class, ok := c.MatchAllowlist(path); ok {
		return class
	}
	if isAPITree(path) {
		return RouteClassInternalAPI
	}
	return RouteClassUI
}

func isAPITree(path string) bool {
	if HasPathPrefixOnBoundary(path, "/api") {
		return true
	}
	rest, ok := strings.CutPrefix(path, "/")
	if !ok {
		return false
	}
	module, tail, found := strings.Cut(rest, "/")
	if !found || module == "" {
		return false
	}
	return HasPathPrefixOnBoundary("/"+tail, "/api")
}

// HasPathPrefixOnBoundary reports whether prefix covers path on segment
// boundaries: /login covers /login and /login/x but not /loginx.
func HasPathPrefixOnBoundary(path, prefix string) bool {
	switch {
	case prefix == "":
		return false
	case !strings.HasPrefix(path, prefix):
		return false
	case len(path) == len(prefix), strings.HasSuffix(prefix, "/"):
		return true
	default:
		return path[len(prefix)] == '/'
	}
}
