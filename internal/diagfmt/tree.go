package diagfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"lread/internal/token"
)

type treeNode struct {
	label    string
	children []*treeNode
}

type treeBlock struct {
	lines []string
	width int
	root  int
}

// buildFormTreeNode turns a form into a binary tree: every cons cell becomes
// a "." node with its head on the left and its tail on the right.
func buildFormTreeNode(t token.Token) *treeNode {
	switch v := t.(type) {
	case nil:
		return &treeNode{label: "<nil>"}
	case *token.Cons:
		if v == nil {
			return &treeNode{label: "<nil>"}
		}
		return &treeNode{
			label:    ".",
			children: []*treeNode{buildFormTreeNode(v.Head), buildFormTreeNode(v.Tail)},
		}
	default:
		return &treeNode{label: v.String()}
	}
}

func displayWidth(s string) int { return runewidth.StringWidth(s) }

func padTo(s string, width int) string {
	if w := displayWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func trimRight(s string) string { return strings.TrimRight(s, " ") }

// renderTree converts a treeNode into a treeBlock containing an ASCII-art
// representation. root is the display column of the node's connector.
func renderTree(node *treeNode) treeBlock {
	label := node.label
	labelWidth := displayWidth(label)

	if len(node.children) == 0 {
		return treeBlock{
			lines: []string{label},
			width: labelWidth,
			root:  labelWidth / 2,
		}
	}

	childBlocks := make([]treeBlock, len(node.children))
	maxChildHeight := 0
	for i, child := range node.children {
		childBlocks[i] = renderTree(child)
		maxChildHeight = max(maxChildHeight, len(childBlocks[i].lines))
	}

	const spacing = 3

	positions := make([]int, len(childBlocks))
	totalWidth := 0
	for i, block := range childBlocks {
		positions[i] = totalWidth + block.root
		totalWidth += block.width
		if i != len(childBlocks)-1 {
			totalWidth += spacing
		}
	}

	childrenCenter := (positions[0] + positions[len(positions)-1]) / 2
	rootPos := labelWidth / 2
	shift := childrenCenter - rootPos

	childPrefix := 0
	if shift < 0 {
		childPrefix = -shift
		for i := range positions {
			positions[i] += childPrefix
		}
		totalWidth += childPrefix
		shift = 0
	} else {
		rootPos += shift
	}

	width := max(totalWidth, shift+labelWidth, rootPos+1)
	rootLine := padTo(strings.Repeat(" ", shift)+label, width)

	connector := []byte(strings.Repeat(" ", width))
	connector[rootPos] = '|'
	for _, pos := range positions {
		switch {
		case pos < rootPos:
			connector[pos] = '/'
		case pos > rootPos:
			connector[pos] = '\\'
		default:
			connector[pos] = '|'
		}
	}

	lines := make([]string, 0, 2+maxChildHeight)
	lines = append(lines, rootLine, string(connector))
	for row := range maxChildHeight {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", childPrefix))
		for i, block := range childBlocks {
			line := ""
			if row < len(block.lines) {
				line = block.lines[row]
			}
			sb.WriteString(padTo(line, block.width))
			if i != len(childBlocks)-1 {
				sb.WriteString(strings.Repeat(" ", spacing))
			}
		}
		lines = append(lines, padTo(sb.String(), width))
	}

	return treeBlock{
		lines: lines,
		width: width,
		root:  rootPos,
	}
}
