package spider

import (
	"strings"

	"golang.org/x/net/html"
)

// walkNodes visits every node depth-first in document order, stopping
// early when visit returns false.
func walkNodes(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walkNodes(c, visit) {
			return false
		}
	}
	return true
}

// findElement returns the first element with the given tag for which
// pred holds. A nil pred matches any element of that tag.
func findElement(root *html.Node, tag string, pred func(*html.Node) bool) *html.Node {
	var found *html.Node
	walkNodes(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == tag && (pred == nil || pred(n)) {
			found = n
			return false
		}
		return true
	})
	return found
}

// collectElements returns every element with the given tag in document order.
func collectElements(root *html.Node, tag string) []*html.Node {
	var out []*html.Node
	walkNodes(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		return true
	})
	return out
}

// attrValue returns the value of the named attribute on an element.
func attrValue(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// hasClass reports whether an element's class attribute contains class.
func hasClass(n *html.Node, class string) bool {
	v, ok := attrValue(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// textContent concatenates the text nodes beneath n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	walkNodes(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}
