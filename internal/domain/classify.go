package domain

import (
	"net/url"
	"strings"
)

// Content types assigned by Classify. Display-only hints, never merge keys.
const (
	TypeVideo   = "video"
	TypeTweet   = "tweet"
	TypePDF     = "pdf"
	TypeImage   = "image"
	TypeRepo    = "repo"
	TypeArticle = "article"
	TypeDocs    = "docs"
	TypeLink    = "link"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".bmp", ".ico"}

var articleHosts = []string{"medium.com", "substack.com", "dev.to", "news.ycombinator.com"}

// Classify derives a coarse content type from URL host and path patterns.
// Pure function, no network access. Unparseable URLs classify as plain links.
func Classify(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return TypeLink
	}

	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	path := strings.ToLower(u.Path)

	switch {
	case host == "youtube.com" || host == "youtu.be" || host == "vimeo.com" || host == "twitch.tv":
		return TypeVideo
	case (host == "twitter.com" || host == "x.com") && strings.Contains(path, "/status/"):
		return TypeTweet
	case strings.HasSuffix(path, ".pdf"):
		return TypePDF
	case hasAnySuffix(path, imageExtensions):
		return TypeImage
	case host == "github.com" || host == "gitlab.com" || host == "bitbucket.org" || host == "codeberg.org":
		return TypeRepo
	case strings.HasPrefix(host, "docs.") || strings.HasPrefix(path, "/docs"):
		return TypeDocs
	case isArticleHost(host) || strings.Contains(path, "/blog/"):
		return TypeArticle
	default:
		return TypeLink
	}
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func isArticleHost(host string) bool {
	for _, h := range articleHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
