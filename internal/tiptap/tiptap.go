// Package tiptap converts Granola's TipTap/ProseMirror rich-text trees
// into markdown. Parsing is best-effort: malformed or unrecognized input
// renders as an empty string for that subtree, never an error.
package tiptap

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Node is one node of the rich-text tree. Unmarshaling never fails: a
// value that is not a JSON object decodes to the zero Node, and fields
// with unexpected shapes are dropped individually.
type Node struct {
	Type    string
	Text    string
	Marks   []Mark
	Attrs   Attrs
	Content []Node
}

// Mark is an inline formatting mark on a text run.
type Mark struct {
	Type string `json:"type"`
}

// Attrs holds the node attributes we render.
type Attrs struct {
	Level int `json:"level"`
}

func (n *Node) UnmarshalJSON(data []byte) error {
	*n = Node{}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}

	// Field-by-field so one bad field doesn't discard its siblings.
	_ = json.Unmarshal(obj["type"], &n.Type)
	_ = json.Unmarshal(obj["text"], &n.Text)
	_ = json.Unmarshal(obj["marks"], &n.Marks)
	_ = json.Unmarshal(obj["attrs"], &n.Attrs)
	_ = json.Unmarshal(obj["content"], &n.Content)
	return nil
}

// kind enumerates the node types the renderer understands. Anything else
// maps to kindUnknown and contributes nothing.
type kind int

const (
	kindUnknown kind = iota
	kindParagraph
	kindHeading
	kindBulletList
	kindOrderedList
	kindListItem
	kindCodeBlock
	kindBlockquote
	kindHorizontalRule
	kindText
)

func kindOf(nodeType string) kind {
	switch nodeType {
	case "paragraph":
		return kindParagraph
	case "heading":
		return kindHeading
	case "bulletList":
		return kindBulletList
	case "orderedList":
		return kindOrderedList
	case "listItem":
		return kindListItem
	case "codeBlock":
		return kindCodeBlock
	case "blockquote":
		return kindBlockquote
	case "horizontalRule":
		return kindHorizontalRule
	case "text":
		return kindText
	}
	return kindUnknown
}

// ToMarkdown renders a raw rich-text document to markdown. The input is
// the root node ({"type":"doc","content":[...]}); absent or malformed
// input yields "".
func ToMarkdown(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var root Node
	if err := json.Unmarshal(raw, &root); err != nil {
		return ""
	}
	return Render(root.Content)
}

// Render joins the markdown of top-level nodes with blank lines. Nodes
// that render empty contribute nothing to the join.
func Render(nodes []Node) string {
	var blocks []string
	for _, n := range nodes {
		if block := renderNode(n, 0); block != "" {
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// renderNode is the single dispatch point over node kinds. depth is the
// list nesting depth (two spaces of indent per level).
func renderNode(n Node, depth int) string {
	switch kindOf(n.Type) {
	case kindParagraph:
		return inlineText(n)
	case kindHeading:
		return renderHeading(n)
	case kindBulletList:
		return renderList(n, depth, false)
	case kindOrderedList:
		return renderList(n, depth, true)
	case kindCodeBlock:
		return renderCodeBlock(n)
	case kindBlockquote:
		return renderBlockquote(n, depth)
	case kindHorizontalRule:
		return "---"
	}
	return ""
}

// inlineText concatenates a node's text runs, applying inline marks in
// the order they appear on each run.
func inlineText(n Node) string {
	var sb strings.Builder
	for _, child := range n.Content {
		if kindOf(child.Type) != kindText {
			continue
		}
		text := child.Text
		for _, mark := range child.Marks {
			switch mark.Type {
			case "bold":
				text = "**" + text + "**"
			case "italic":
				text = "*" + text + "*"
			case "code":
				text = "`" + text + "`"
			}
		}
		sb.WriteString(text)
	}
	return sb.String()
}

func renderHeading(n Node) string {
	level := n.Attrs.Level
	if level < 1 {
		level = 1
	}
	var parts []string
	for _, child := range n.Content {
		if kindOf(child.Type) == kindText {
			parts = append(parts, child.Text)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Repeat("#", level) + " " + strings.Join(parts, " ")
}

func renderList(n Node, depth int, ordered bool) string {
	indent := strings.Repeat("  ", depth)
	var lines []string
	index := 0
	for _, item := range n.Content {
		if kindOf(item.Type) != kindListItem {
			continue
		}
		index++
		for _, child := range item.Content {
			switch kindOf(child.Type) {
			case kindBulletList, kindOrderedList:
				// Nested sublists continue after the item's own line.
				if nested := renderNode(child, depth+1); nested != "" {
					lines = append(lines, nested)
				}
			default:
				text := renderNode(child, depth)
				if text == "" {
					continue
				}
				if ordered {
					lines = append(lines, indent+strconv.Itoa(index)+". "+text)
				} else {
					lines = append(lines, indent+"- "+text)
				}
			}
		}
	}
	return strings.Join(lines, "\n")
}

func renderCodeBlock(n Node) string {
	var lines []string
	for _, child := range n.Content {
		if kindOf(child.Type) == kindText {
			lines = append(lines, child.Text)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "```\n" + strings.Join(lines, "\n") + "\n```"
}

func renderBlockquote(n Node, depth int) string {
	var lines []string
	for _, child := range n.Content {
		if text := renderNode(child, depth); text != "" {
			lines = append(lines, "> "+text)
		}
	}
	return strings.Join(lines, "\n")
}
