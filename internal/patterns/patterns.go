// Package patterns implements first-match-wins selection over ordered
// regular expression lists. Every extractor in the pipeline funnels its
// tie-break semantics through this package so that "most specific pattern
// first" behaves identically everywhere.
package patterns

import "regexp"

// Chain is an ordered list of compiled patterns. Order encodes confidence:
// the first pattern that matches wins and later patterns are never consulted.
type Chain []*regexp.Regexp

// Compile builds a Chain from raw expressions, panicking on invalid input.
// Chains are package-level tables, so a bad expression is a programming
// error caught at init time.
func Compile(exprs ...string) Chain {
	chain := make(Chain, 0, len(exprs))
	for _, expr := range exprs {
		chain = append(chain, regexp.MustCompile(expr))
	}
	return chain
}

// First returns the first capture group of the first matching pattern. When
// the matching pattern has no capture group, the whole match is returned.
// The boolean reports whether any pattern matched at all.
func (c Chain) First(text string) (string, bool) {
	for _, re := range c {
		if m := re.FindStringSubmatch(text); m != nil {
			if len(m) > 1 {
				return m[1], true
			}
			return m[0], true
		}
	}
	return "", false
}

// FirstFull behaves like First but always returns the whole match rather
// than the first capture group.
func (c Chain) FirstFull(text string) (string, bool) {
	for _, re := range c {
		if m := re.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}

// All returns the first capture group of every match of every pattern, in
// pattern order then text order. Duplicates are preserved; callers that
// need set semantics dedupe on top.
func (c Chain) All(text string) []string {
	var out []string
	for _, re := range c {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) > 1 {
				out = append(out, m[1])
			} else {
				out = append(out, m[0])
			}
		}
	}
	return out
}

// Dedupe removes duplicate strings preserving first-occurrence order.
func Dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
