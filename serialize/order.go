package serialize

import (
	"strings"

	"model-mapper/document"
	"model-mapper/model"
)

// recordOrder lists the children of el as parsed. Character data and
// comments are kept for mixed content only.
func recordOrder(el *document.Node, mixed bool) []model.OrderEntry {
	order := make([]model.OrderEntry, 0, len(el.Children))

	for _, c := range el.Children {
		switch {
		case c.Kind == document.KindElement:
			order = append(order, model.OrderEntry{Kind: c.Kind, Name: c.Name})
		case !mixed:
		case c.Kind == document.KindEntity:
			order = append(order, model.OrderEntry{Kind: c.Kind, Name: c.Name})
		case c.Kind.IsCharData(), c.Kind == document.KindComment:
			order = append(order, model.OrderEntry{Kind: c.Kind, Text: c.Text})
		}
	}

	return order
}

// reorder arranges freshly written children after a recorded order.
// Elements are matched by name in turn; elements the order does not know
// about follow at the end. In mixed content the recorded character data is
// replayed as long as it still spells the written content; otherwise the
// written text takes the place of the first recorded text segment.
func reorder(children []*document.Node, order []model.OrderEntry, mixed bool) []*document.Node {
	queues := make(map[string][]*document.Node)

	var text []*document.Node

	for _, c := range children {
		if c.Kind == document.KindElement {
			queues[c.Name] = append(queues[c.Name], c)
		} else {
			text = append(text, c)
		}
	}

	replay := mixed && (len(text) == 0 || recordedText(order) == writtenText(text))
	if replay {
		text = nil
	}

	out := make([]*document.Node, 0, len(children)+len(order))
	placed := make(map[*document.Node]bool, len(children))

	for _, e := range order {
		switch {
		case e.Kind == document.KindElement:
			if q := queues[e.Name]; len(q) > 0 {
				out = append(out, q[0])
				placed[q[0]] = true
				queues[e.Name] = q[1:]
			}
		case e.Kind == document.KindComment:
			out = append(out, &document.Node{Kind: e.Kind, Text: e.Text})
		case replay:
			out = append(out, &document.Node{Kind: e.Kind, Name: e.Name, Text: e.Text})
		default:
			out = append(out, text...)
			text = nil
		}
	}

	for _, c := range children {
		if c.Kind == document.KindElement && !placed[c] {
			out = append(out, c)
		}
	}

	if len(text) > 0 {
		out = append(text, out...)
	}

	return out
}

func recordedText(order []model.OrderEntry) string {
	var sb strings.Builder

	for _, e := range order {
		switch {
		case e.Kind == document.KindEntity:
			sb.WriteString("&" + e.Name + ";")
		case e.Kind.IsCharData():
			sb.WriteString(e.Text)
		}
	}

	return sb.String()
}

func writtenText(nodes []*document.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(n.TextContent())
	}

	return sb.String()
}
