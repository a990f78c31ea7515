package pill

import "strings"

// Node is the minimal view of a page element the click resolver needs: a
// tag name, attribute lookup, and the parent chain. The host's bridge maps
// its real elements onto this; tests build them by hand.
type Node interface {
	// Tag returns the element's tag name, in any case.
	Tag() string
	// Attr returns the named attribute's value, "" when absent. For
	// anchors, "href" is expected to be the resolved URL.
	Attr(name string) string
	// Parent returns the parent element, or nil at the root.
	Parent() Node
}

// InteractiveTarget identifies the interactive element a click landed on.
type InteractiveTarget struct {
	Tag string
	URL string
}

// ResolveInteractiveAncestor walks node and its ancestor chain looking for
// an interactive element: an anchor with an href, or a button with a
// formaction or data-url. Returns nil when the chain has none.
func ResolveInteractiveAncestor(node Node) *InteractiveTarget {
	for current := node; current != nil; current = current.Parent() {
		switch strings.ToLower(current.Tag()) {
		case "a":
			if href := current.Attr("href"); href != "" {
				return &InteractiveTarget{Tag: "a", URL: href}
			}
		case "button":
			if action := current.Attr("formaction"); action != "" {
				return &InteractiveTarget{Tag: "button", URL: action}
			}
			if dataURL := current.Attr("data-url"); dataURL != "" {
				return &InteractiveTarget{Tag: "button", URL: dataURL}
			}
		}
	}
	return nil
}

// SimpleNode is a plain Node implementation for hosts and tests.
type SimpleNode struct {
	TagName    string
	Attrs      map[string]string
	ParentNode Node
}

var _ Node = (*SimpleNode)(nil)

func (n *SimpleNode) Tag() string { return n.TagName }

func (n *SimpleNode) Attr(name string) string { return n.Attrs[name] }

func (n *SimpleNode) Parent() Node { return n.ParentNode }
