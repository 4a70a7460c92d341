package res

import (
	"fmt"
	"strings"
)

// Param describes a named path parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of named path parameters.
type Params []Param

// Get returns the value of the named parameter or an empty string.
func (p Params) Get(key string) string {
	for _, param := range p {
		if param.Key == key {
			return param.Value
		}
	}
	return ""
}

// router matches URL paths against registered patterns. The pattern may
// contain named elements (":name") that match any single non-empty path
// segment, and a trailing catch-all ("*name") that matches the rest of the
// path. Static segments always win over named ones, named ones win over the
// catch-all.
type router struct {
	root *node
}

// node is a single element of the routing tree.
type node struct {
	static    map[string]*node
	param     *node  // ":name" child
	paramKey  string // name of the ":name" child
	catchKey  string // name of the "*name" element
	catchAll  interface{}
	handler   interface{}
	slashOnly bool // the pattern was registered with a trailing slash
}

// split breaks the URL path into a list of normalized segments.
func split(url string) []string {
	url = strings.Trim(url, "/")
	if url == "" {
		return nil
	}
	parts := strings.Split(url, "/")
	result := parts[:0]
	for _, part := range parts {
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

// add registers the handler for the given pattern. It returns an error if the
// pattern conflicts with an already registered one: a duplicate pattern, a
// different name for a dynamic element at the same position, or a catch-all
// followed by more segments.
func (r *router) add(pattern string, handler interface{}) error {
	if handler == nil {
		return fmt.Errorf("nil handler for pattern %q", pattern)
	}
	if r.root == nil {
		r.root = new(node)
	}
	n := r.root
	parts := split(pattern)
	for i, part := range parts {
		switch part[0] {
		case ':':
			name := part[1:]
			if name == "" {
				return fmt.Errorf("unnamed parameter in pattern %q", pattern)
			}
			if n.param == nil {
				n.param = new(node)
				n.paramKey = name
			} else if n.paramKey != name {
				return fmt.Errorf("conflicting parameter name %q in pattern %q: already registered as %q",
					name, pattern, n.paramKey)
			}
			n = n.param
		case '*':
			if i != len(parts)-1 {
				return fmt.Errorf("catch-all must be the last element of pattern %q", pattern)
			}
			if n.catchAll != nil {
				return fmt.Errorf("duplicate catch-all in pattern %q", pattern)
			}
			n.catchKey = part[1:]
			n.catchAll = handler
			return nil
		default:
			if n.static == nil {
				n.static = make(map[string]*node)
			}
			next := n.static[part]
			if next == nil {
				next = new(node)
				n.static[part] = next
			}
			n = next
		}
	}
	if n.handler != nil {
		return fmt.Errorf("duplicate pattern %q", pattern)
	}
	n.handler = handler
	// a pattern with a trailing slash does not match the path without it
	n.slashOnly = len(pattern) > 1 && strings.HasSuffix(pattern, "/")
	return nil
}

// lookup returns the handler registered for the path and the values of the
// named parameters used in its pattern. Returns nil if the path does not match
// any registered pattern.
func (r *router) lookup(url string) (interface{}, Params) {
	if r.root == nil {
		return nil, nil
	}
	slash := len(url) > 1 && strings.HasSuffix(url, "/")
	return match(r.root, split(url), slash, nil)
}

// match walks the routing tree recursively, preferring static segments and
// backtracking to named elements and then to the catch-all.
func match(n *node, parts []string, slash bool, params Params) (interface{}, Params) {
	if len(parts) == 0 {
		if n.handler != nil && (!n.slashOnly || slash) {
			return n.handler, params
		}
		return nil, nil
	}
	part := parts[0]
	if next, ok := n.static[part]; ok {
		if handler, p := match(next, parts[1:], slash, params); handler != nil {
			return handler, p
		}
	}
	if n.param != nil {
		p := append(params, Param{Key: n.paramKey, Value: part})
		if handler, p := match(n.param, parts[1:], slash, p); handler != nil {
			return handler, p
		}
	}
	if n.catchAll != nil {
		params = append(params, Param{
			Key:   n.catchKey,
			Value: strings.Join(parts, "/"),
		})
		return n.catchAll, params
	}
	return nil, nil
}
