package page

import (
	"strings"

	"golang.org/x/net/html"
)

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// find returns the first descendant of n (excluding n) matching match.
func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

// closest returns n or its nearest ancestor matching match.
func closest(n *html.Node, match func(*html.Node) bool) *html.Node {
	for ; n != nil; n = n.Parent {
		if match(n) {
			return n
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, attrClass)) {
		if c == class {
			return true
		}
	}
	return false
}

// setClass adds or removes class and reports whether anything changed.
func setClass(n *html.Node, class string, on bool) bool {
	if hasClass(n, class) == on {
		return false
	}
	classes := strings.Fields(attr(n, attrClass))
	if on {
		classes = append(classes, class)
	} else {
		kept := classes[:0]
		for _, c := range classes {
			if c != class {
				kept = append(kept, c)
			}
		}
		classes = kept
	}
	setAttr(n, attrClass, strings.Join(classes, " "))
	return true
}

// textOf concatenates the text under n, skipping subtrees matched by skip.
func textOf(n *html.Node, skip func(*html.Node) bool) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if skip != nil && skip(n) {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
