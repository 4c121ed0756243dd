package soc

import (
	"errors"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

const BaseUrl = "https://classes.rutgers.edu/soc/api/courses.json"

// NewCollector configures a collector suitable for the SOC API. An empty
// cacheDir disables the web cache; a zero timeout keeps colly's default.
func NewCollector(cacheDir string, timeout time.Duration) *colly.Collector {
	c := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.MaxBodySize(0),
	)
	c.CacheDir = cacheDir
	if timeout > 0 {
		c.SetRequestTimeout(timeout)
	}
	return c
}

// Client fetches course listings one term at a time.
type Client struct {
	c       *colly.Collector
	baseUrl string
}

func NewClient(c *colly.Collector, baseUrl string) *Client {
	if baseUrl == "" {
		baseUrl = BaseUrl
	}
	return &Client{c: c, baseUrl: baseUrl}
}

func (cl *Client) Url(key TermKey) string {
	return fmt.Sprintf("%s?year=%d&term=%d&campus=%s", cl.baseUrl, key.Year, key.Term, key.Campus)
}

// FetchTerm issues one GET for key and parses the listing. An unparseable
// body comes back as a *ParseError; transport failures and non-2xx statuses
// are returned as they are.
func (cl *Client) FetchTerm(key TermKey) ([]CourseRecord, error) {
	var body []byte
	c := cl.c.Clone() // same collector but without old callbacks
	c.OnResponse(func(res *colly.Response) {
		body = res.Body
	})

	if err := c.Visit(cl.Url(key)); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", key, err)
	}

	records, err := ParseCourses(body)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.Key = key
		}
		return nil, err
	}
	return records, nil
}
