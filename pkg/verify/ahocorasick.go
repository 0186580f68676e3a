package verify

import "container/list"

// acNode is one trie node of an Aho-Corasick automaton.
type acNode struct {
	children map[byte]*acNode
	fail     *acNode
	output   []string
}

func newACNode() *acNode {
	return &acNode{children: make(map[byte]*acNode)}
}

// ACMatcher is a multi-pattern substring matcher built once at load time
// and shared across requests: the four compliance validators are
// independent multi-pattern matchers, built once at load time and shared.
type ACMatcher struct {
	root *acNode
}

// NewACMatcher builds an Aho-Corasick automaton over the given patterns.
// Empty patterns are ignored.
func NewACMatcher(patterns []string) *ACMatcher {
	root := newACNode()
	for _, p := range patterns {
		if p == "" {
			continue
		}
		node := root
		for i := 0; i < len(p); i++ {
			c := p[i]
			next, ok := node.children[c]
			if !ok {
				next = newACNode()
				node.children[c] = next
			}
			node = next
		}
		node.output = append(node.output, p)
	}

	// Build fail links breadth-first.
	queue := list.New()
	for _, child := range root.children {
		child.fail = root
		queue.PushBack(child)
	}
	for queue.Len() > 0 {
		front := queue.Remove(queue.Front()).(*acNode)
		for c, child := range front.children {
			queue.PushBack(child)
			failNode := front.fail
			for failNode != nil {
				if next, ok := failNode.children[c]; ok {
					child.fail = next
					break
				}
				failNode = failNode.fail
			}
			if child.fail == nil {
				child.fail = root
			}
			child.output = append(child.output, child.fail.output...)
		}
	}

	return &ACMatcher{root: root}
}

// ACMatch is one matched pattern occurrence.
type ACMatch struct {
	Pattern string
	Start   int
	End     int // exclusive
}

// FindAll returns every pattern occurrence in text, in left-to-right,
// first-encountered order.
func (m *ACMatcher) FindAll(text string) []ACMatch {
	var matches []ACMatch
	node := m.root
	for i := 0; i < len(text); i++ {
		c := text[i]
		for node != m.root {
			if _, ok := node.children[c]; ok {
				break
			}
			node = node.fail
		}
		if next, ok := node.children[c]; ok {
			node = next
		} else {
			node = m.root
		}
		for _, p := range node.output {
			matches = append(matches, ACMatch{Pattern: p, Start: i - len(p) + 1, End: i + 1})
		}
	}
	return matches
}
