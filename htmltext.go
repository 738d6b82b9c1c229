// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package convertflow

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"
)

// htmlToMarkdown converts an HTML document or fragment to markdown with
// ATX headings and pipe tables. Large inline data URIs are shortened.
func htmlToMarkdown(src string) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle("atx"),
			),
			table.NewTablePlugin(),
		),
	)

	md, err := conv.ConvertString(removeScriptAndStyle(src))
	if err != nil {
		return "", err
	}
	return truncateDataURIs(md), nil
}

var (
	reScript  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	reStyle   = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	reDataURI = regexp.MustCompile(`(data:[a-zA-Z0-9/+.-]+;base64,)[A-Za-z0-9+/=]{64,}`)
)

// removeScriptAndStyle removes <script> and <style> tags and their content.
func removeScriptAndStyle(src string) string {
	src = reScript.ReplaceAllString(src, "")
	return reStyle.ReplaceAllString(src, "")
}

func truncateDataURIs(md string) string {
	return reDataURI.ReplaceAllString(md, "${1}...")
}

// htmlTextContent concatenates every text node of the document in order,
// the same string a browser reports as the body's textContent. Script and
// style bodies are not text.
func htmlTextContent(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "head", "template":
				return
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}

// extractHTMLTitle returns the trimmed <title> text, or "".
func extractHTMLTitle(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return ""
	}

	var title string
	var find func(*html.Node) bool
	find = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil {
				title = n.FirstChild.Data
			}
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if find(c) {
				return true
			}
		}
		return false
	}
	find(doc)
	return strings.TrimSpace(title)
}
