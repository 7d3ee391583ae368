// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/ftex

package ftex

import (
	"fmt"
	"path"
	"strings"

	"github.com/woozymasta/pathrules"
)

// compressMatcher holds compiled rules selecting textures for chunk compression.
type compressMatcher struct {
	matcher *pathrules.Matcher
}

// newCompressMatcher compiles compression path rules. No rules yields nil.
func newCompressMatcher(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*compressMatcher, error) {
	normalized := make([]pathrules.Rule, 0, len(rules))
	for _, rule := range rules {
		pattern := normalizePathForMatching(rule.Pattern)
		if pattern == "" {
			continue
		}
		normalized = append(normalized, pathrules.Rule{Action: rule.Action, Pattern: pattern})
	}
	if len(normalized) == 0 {
		return nil, nil
	}

	matcher, err := pathrules.NewMatcher(normalized, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: compile rules: %w", ErrInvalidCompressPattern, err)
	}

	return &compressMatcher{matcher: matcher}, nil
}

// Match reports whether the texture path is included by the rules.
func (m *compressMatcher) Match(p string) bool {
	if m == nil || m.matcher == nil {
		return false
	}

	candidate := strings.TrimPrefix(path.Clean("/"+normalizePathForMatching(p)), "/")
	if candidate == "" || candidate == "." {
		return false
	}

	return m.matcher.Included(candidate, false)
}

// compressMatcherOptions fills zero-valued matcher options: case-insensitive,
// textures not matched by any rule stay stored.
func compressMatcherOptions(opts pathrules.MatcherOptions) pathrules.MatcherOptions {
	if opts == (pathrules.MatcherOptions{}) {
		return pathrules.MatcherOptions{
			CaseInsensitive: true,
			DefaultAction:   pathrules.ActionExclude,
		}
	}
	if opts.DefaultAction == pathrules.ActionUnknown {
		opts.DefaultAction = pathrules.ActionExclude
	}

	return opts
}

func normalizePathForMatching(p string) string {
	p = strings.TrimSpace(p)
	p = strings.ReplaceAll(p, `\`, `/`)
	return strings.TrimPrefix(p, "./")
}

// forPath returns options with Compress resolved against CompressRules for
// the given texture path.
func (o *ConvertOptions) forPath(texturePath string) (*ConvertOptions, error) {
	if o == nil || len(o.CompressRules) == 0 {
		return o, nil
	}

	matcher, err := newCompressMatcher(o.CompressRules, compressMatcherOptions(o.CompressMatcherOptions))
	if err != nil {
		return nil, err
	}
	if matcher == nil {
		return o, nil
	}

	resolved := *o
	resolved.Compress = matcher.Match(texturePath)
	return &resolved, nil
}
