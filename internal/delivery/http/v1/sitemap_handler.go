package v1

import (
	"encoding/xml"
	"net/http"

	"tescilofisi-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type SitemapHandler struct {
	postUC  domain.PostUsecase
	baseURL string
}

func NewSitemapHandler(r *gin.Engine, postUC domain.PostUsecase, baseURL string) {
	handler := &SitemapHandler{
		postUC:  postUC,
		baseURL: baseURL,
	}

	r.GET("/sitemap.xml", handler.Sitemap)
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// staticPages are the marketing pages, relative to the site root.
var staticPages = []struct {
	path       string
	changeFreq string
	priority   string
}{
	{"/", "weekly", "1.0"},
	{"/hizmetler", "monthly", "0.8"},
	{"/hakkimizda", "monthly", "0.6"},
	{"/blog", "daily", "0.9"},
	{"/iletisim", "monthly", "0.7"},
}

// Sitemap serves the search engine sitemap: the static marketing pages plus
// every published blog post.
func (h *SitemapHandler) Sitemap(c *gin.Context) {
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	for _, page := range staticPages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        h.baseURL + page.path,
			ChangeFreq: page.changeFreq,
			Priority:   page.priority,
		})
	}

	posts, err := h.postUC.ListPublishedPosts(c.Request.Context())
	if err != nil {
		// A partial sitemap beats a 500; search engines retry anyway.
		posts = nil
	}
	for _, post := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        h.baseURL + "/blog/" + post.Slug,
			LastMod:    post.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "0.7",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, xml.Header+string(out))
}
