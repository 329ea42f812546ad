// Debug tool to show how a page is turned into text: the element outline,
// the link and form tables, and whether the content looks JavaScript-only.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"

	"textbrowser/document"
	"textbrowser/fetcher"
)

func main() {
	url := "https://example.com"
	if len(os.Args) > 1 {
		url = os.Args[1]
	}

	f := &fetcher.Mux{Remote: fetcher.NewHTTP(fetcher.DefaultOptions()), Local: &fetcher.Local{}}
	res, err := f.Fetch(context.Background(), fetcher.Request{URL: url})
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	fmt.Printf("Fetched %s in %v (%d bytes)\n\n", res.FinalURL, res.FetchTime, len(res.HTML))

	doc, err := html.Parse(strings.NewReader(res.HTML))
	if err != nil {
		fmt.Println("Parse error:", err)
		os.Exit(1)
	}
	if body := findElement(doc, "body"); body != nil {
		fmt.Println("Body outline:")
		analyzeNode(body, 1, 3)
		fmt.Println()
	} else {
		fmt.Println("No body found!")
	}

	page, err := document.NewBuilder(document.Options{Width: 76}).Load(res.FinalURL, strings.NewReader(res.HTML))
	if err != nil {
		fmt.Println("Build:", err)
	}
	fmt.Printf("Lines: %d  Links: %d  Forms: %d  Degenerate: %v\n\n", len(page.Body), len(page.Links), len(page.Forms), page.Degenerate)

	for _, l := range page.Links {
		fmt.Printf("  [%d] %s -> %s\n", l.Index, l.Label, l.URL)
	}
	for _, fm := range page.Forms {
		fmt.Printf("  form %d: %s %s\n", fm.Index, fm.Method, fm.Target())
		for _, fd := range fm.Fields {
			fmt.Printf("      %s (%s)\n", fd.Name, fd.Kind)
		}
	}
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func analyzeNode(n *html.Node, depth, maxDepth int) {
	if depth > maxDepth {
		return
	}
	indent := strings.Repeat("  ", depth)

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		var attrs bytes.Buffer
		for _, a := range c.Attr {
			if a.Key == "id" || a.Key == "class" {
				fmt.Fprintf(&attrs, " %s=%q", a.Key, a.Val)
			}
		}
		fmt.Printf("%s<%s%s>\n", indent, c.Data, attrs.String())
		analyzeNode(c, depth+1, maxDepth)
	}
}
