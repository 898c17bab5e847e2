package nodepath

import (
	"sort"
	"strings"

	"github.com/kataras/figma-tokens/pkg/figma"
)

// Resolve parses path and resolves it against root. It returns nil when the
// path does not parse or any known step finds no match.
func Resolve(root *figma.Node, path string, subs map[string]string) *figma.Node {
	steps, err := Parse(path)
	if err != nil {
		return nil
	}
	return ResolveSteps(root, steps, subs)
}

// ResolveSteps walks the steps from root. Each step searches depth-first,
// pre-order, starting at the current node itself, and keeps the first node of
// the requested type (and name, compared case-insensitively after placeholder
// substitution). Steps with an unrecognized type are skipped. There is no
// backtracking into earlier steps.
func ResolveSteps(root *figma.Node, steps []Step, subs map[string]string) *figma.Node {
	if root == nil {
		return nil
	}

	replace := replacer(subs)
	current := root
	for _, step := range steps {
		if !step.Known {
			continue
		}

		name := strings.TrimSpace(replace.Replace(step.Name))
		match := FindFirst(current, func(n *figma.Node) bool {
			if n.Type != step.Type {
				return false
			}
			return !step.HasName || strings.EqualFold(n.Name, name)
		})
		if match == nil {
			return nil
		}
		current = match
	}
	return current
}

// replacer substitutes the longest placeholders first so that $type never
// clobbers the prefix of a longer $typeface.
func replacer(subs map[string]string) *strings.Replacer {
	keys := make([]string, 0, len(subs))
	for k := range subs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, subs[k])
	}
	return strings.NewReplacer(pairs...)
}

// FindFirst returns the first node, in depth-first pre-order starting with
// root itself, for which match returns true. The traversal uses an explicit
// stack so that pathological nesting cannot exhaust the goroutine stack.
func FindFirst(root *figma.Node, match func(*figma.Node) bool) *figma.Node {
	var found *figma.Node
	walk(root, func(n *figma.Node) bool {
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node matching, in depth-first pre-order.
func FindAll(root *figma.Node, match func(*figma.Node) bool) []*figma.Node {
	var out []*figma.Node
	walk(root, func(n *figma.Node) bool {
		if match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// walk visits nodes in pre-order until visit returns false.
func walk(root *figma.Node, visit func(*figma.Node) bool) {
	if root == nil {
		return
	}
	stack := []*figma.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visit(n) {
			return
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, &n.Children[i])
		}
	}
}
