package input

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/tree"
)

// decodeText reads an indented outline. Children are lines more indented
// than their parent; a trailing number makes a line a weighted leaf; a
// childless line without a number is a zero-weight leaf. Blank lines and
// lines starting with # are skipped.
func decodeText(r io.Reader) (*tree.Node, error) {
	type frame struct {
		indent int
		node   *draft
	}

	var (
		root  *draft
		stack []frame
	)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Text()
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		indent := leadingIndent(raw)
		name, weight, isLeaf := splitWeight(text)
		node := &draft{name: name, weight: weight, leaf: isLeaf}

		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			if root != nil {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"line %d: %q starts a second root; outlines have exactly one", line, name)
			}
			root = node
		} else {
			parent := stack[len(stack)-1].node
			if parent.leaf {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"line %d: node %q has both a weight and children; internal weights are derived", line, parent.name)
			}
			parent.children = append(parent.children, node)
		}
		stack = append(stack, frame{indent: indent, node: node})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "reading outline")
	}
	if root == nil {
		return nil, errors.New(errors.ErrCodeMalformedInput, "outline contains no nodes")
	}
	return root.build()
}

// leadingIndent counts leading spaces and tabs. Both count one level;
// nesting only requires children to be deeper than their parent, not a
// particular indent width.
func leadingIndent(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return i
		}
	}
	return len(line)
}

// splitWeight splits a trailing numeric token off an outline line. Lines
// without one are internal nodes (or zero-weight leaves if childless).
func splitWeight(text string) (name string, weight float64, ok bool) {
	i := strings.LastIndexAny(text, " \t")
	if i < 0 {
		return text, 0, false
	}
	w, err := strconv.ParseFloat(text[i+1:], 64)
	if err != nil {
		return text, 0, false
	}
	return strings.TrimRight(text[:i], " \t"), w, true
}
