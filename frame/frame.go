// Package frame implements the server side of the frame-rendering protocol:
// screens are HTML documents carrying fc:frame meta tags, every transition is
// an explicit user-triggered button press posted back to the server.
package frame

import (
	"fmt"
	"html"
	"strings"
)

// ButtonAction is the kind of an interactive element on a frame.
type ButtonAction string

const (
	// ActionPost posts the frame action to the button target (or the frame's
	// post URL) and renders the returned frame.
	ActionPost ButtonAction = "post"
	// ActionLink opens an external URL.
	ActionLink ButtonAction = "link"
	// ActionTx requests transaction data from the target and hands it to the
	// connected wallet; the post URL override is called after submission.
	ActionTx ButtonAction = "tx"
)

// Button is one interactive element of a frame.
//
// Fields:
// - Label: the button caption.
// - Action: the button kind.
// - Target: the URL the action is directed at.
// - PostURL: for tx buttons, the post-action override invoked after the
//   wallet submits the transaction.
type Button struct {
	Label   string
	Action  ButtonAction
	Target  string
	PostURL string
}

// Frame is a single renderable screen.
type Frame struct {
	Image       string
	AspectRatio string
	PostURL     string
	Buttons     []Button
}

// RenderHTML renders the frame as an HTML document carrying the vNext meta
// tags, with an optional body for browsers hitting the URL directly.
func (f Frame) RenderHTML(title, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	meta(&b, "og:title", title)
	meta(&b, "og:image", f.Image)
	meta(&b, "fc:frame", "vNext")
	meta(&b, "fc:frame:image", f.Image)
	if f.AspectRatio != "" {
		meta(&b, "fc:frame:image:aspect_ratio", f.AspectRatio)
	}
	if f.PostURL != "" {
		meta(&b, "fc:frame:post_url", f.PostURL)
	}
	for i, btn := range f.Buttons {
		idx := i + 1
		meta(&b, fmt.Sprintf("fc:frame:button:%d", idx), btn.Label)
		meta(&b, fmt.Sprintf("fc:frame:button:%d:action", idx), string(btn.Action))
		if btn.Target != "" {
			meta(&b, fmt.Sprintf("fc:frame:button:%d:target", idx), btn.Target)
		}
		if btn.PostURL != "" {
			meta(&b, fmt.Sprintf("fc:frame:button:%d:post_url", idx), btn.PostURL)
		}
	}
	fmt.Fprintf(&b, "<title>%s</title>\n</head>\n<body>%s</body>\n</html>\n",
		html.EscapeString(title), body)
	return b.String()
}

func meta(b *strings.Builder, property, content string) {
	fmt.Fprintf(b, "<meta property=%q content=%q />\n",
		html.EscapeString(property), html.EscapeString(content))
}
