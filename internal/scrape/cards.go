package scrape

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	readMoreText = "read more"
	// maxClimb bounds how many ancestors of a "read more" link are searched
	// for the card heading.
	maxClimb = 10
	// maxTaglineSiblings bounds how many siblings after the heading may hold
	// the tagline.
	maxTaglineSiblings = 3
)

// Card is one company entry found on a listing page.
type Card struct {
	Name      string
	Tagline   string
	DetailURL string
}

// ExtractCards returns the cards of a listing page in document order. Relative
// detail links are resolved against base.
func ExtractCards(doc *goquery.Document, base *url.URL) []Card {
	var cards []Card
	doc.Find("a").Each(func(_ int, link *goquery.Selection) {
		if !strings.Contains(strings.ToLower(link.Text()), readMoreText) {
			return
		}
		heading, ok := cardHeading(link)
		if !ok {
			return
		}
		href, _ := link.Attr("href")
		cards = append(cards, Card{
			Name:      cleanText(heading.Text()),
			Tagline:   tagline(heading),
			DetailURL: resolve(base, href),
		})
	})
	return cards
}

// cardHeading climbs from link to the first ancestor whose first h1-h3 has
// text. Ancestors whose first heading is blank are skipped.
func cardHeading(link *goquery.Selection) (*goquery.Selection, bool) {
	block := link
	for range maxClimb {
		block = block.Parent()
		if block.Length() == 0 {
			return nil, false
		}
		heading := block.Find("h1, h2, h3").First()
		if heading.Length() > 0 && cleanText(heading.Text()) != "" {
			return heading, true
		}
	}
	return nil, false
}

func tagline(heading *goquery.Selection) string {
	sib := heading.Next()
	for range maxTaglineSiblings {
		if sib.Length() == 0 {
			break
		}
		text := spacedText(sib)
		if text != "" && !strings.Contains(strings.ToLower(text), readMoreText) {
			return text
		}
		sib = sib.Next()
	}
	return ""
}

// spacedText joins the text nodes under sel with single spaces, so adjacent
// inline elements do not run together.
func spacedText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, node := range sel.Nodes {
		walk(node)
	}
	return cleanText(strings.Join(parts, " "))
}

func cleanText(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
