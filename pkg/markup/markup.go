// Package markup is the boundary for HTML that arrives from the content store. Only a
// Trusted value may be rendered as HTML; everything else must pass through Sanitize.
package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
)

// Trusted is HTML that is safe to render verbatim.
type Trusted string

func (t Trusted) String() string {
	return string(t)
}

var (
	strippedElements = strings.Join([]string{
		"script", "style", "iframe", "frame", "frameset", "object", "embed",
		"applet", "link", "meta", "base", "form", "noscript", "template",
	}, ", ")

	urlAttributes = []string{"href", "src", "action", "formaction", "xlink:href", "srcset"}
)

// Policy decides how content HTML crosses the boundary.
type Policy struct {
	// TrustSource declares that the content store is only written by the studio itself.
	TrustSource bool
}

func (p Policy) Render(html string) Trusted {
	if p.TrustSource {
		return Trust(html)
	}
	return Sanitize(html)
}

// Trust marks html as safe without inspecting it.
func Trust(html string) Trusted {
	return Trusted(html)
}

// Sanitize removes active content: scripting and embedding elements, event handler
// attributes, and javascript:/vbscript:/data: URLs.
func Sanitize(html string) Trusted {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	body := doc.Find("body")
	body.Find(strippedElements).Remove()
	body.Find("*").Each(func(_ int, s *goquery.Selection) {
		var drop []string
		for _, attr := range s.Nodes[0].Attr {
			name := strings.ToLower(attr.Key)
			switch {
			case strings.HasPrefix(name, "on"), name == "style":
				drop = append(drop, attr.Key)
			case lo.Contains(urlAttributes, name) && isDangerousURL(attr.Val):
				drop = append(drop, attr.Key)
			}
		}
		for _, key := range drop {
			s.RemoveAttr(key)
		}
	})

	out, err := body.Html()
	if err != nil {
		return Trusted(body.Text())
	}
	return Trusted(strings.TrimSpace(out))
}

func isDangerousURL(raw string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, strings.ToLower(raw))
	for _, scheme := range []string{"javascript:", "vbscript:", "data:"} {
		if strings.HasPrefix(cleaned, scheme) {
			return true
		}
	}
	return false
}

// Features extracts the bullet lines of a service description: the text of each <p>
// when there are any, otherwise the non-empty lines of the tag-stripped text.
func Features(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	paragraphs := doc.Find("p")
	if paragraphs.Length() > 0 {
		texts := paragraphs.Map(func(_ int, s *goquery.Selection) string {
			return strings.TrimSpace(s.Text())
		})
		return lo.Compact(texts)
	}

	doc.Find("br").ReplaceWithHtml("\n")
	lines := lo.Map(strings.Split(doc.Text(), "\n"), func(line string, _ int) string {
		return strings.TrimSpace(line)
	})
	return lo.Compact(lines)
}
