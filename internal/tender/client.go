package tender

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	defaultAPIURL    = "https://ey-fmcg.onrender.com"
	scrapePath       = "/scrape"
	defaultUserAgent = "yashogale30/rfp-responder"

	contentType     = "application/json"
	contentEncoding = "gzip, deflate, br"
)

// SourceParams controls the portal listing request.
type SourceParams struct {
	URL    string `yaml:"url" mapstructure:"url"`
	Months int    `yaml:"months" mapstructure:"months"`
}

// Client talks to the tender portal. It is a thin collaborator: all it
// does is fetch raw listings and hand them to the adapter.
type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(ctx context.Context, logger *zap.Logger, token string) *Client {
	return &Client{
		ctx:    ctx,
		token:  token,
		APIURL: defaultAPIURL,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger:    logger,
		UserAgent: defaultUserAgent,
	}
}

// listingResponse is the portal's envelope for the scrape endpoint.
type listingResponse struct {
	Data []map[string]any `json:"data"`
}

// Fetch retrieves tender listings and converts them to the canonical
// schema. An empty listing is a valid result, not an error.
func (c *Client) Fetch(params *SourceParams) (*Tenders, error) {
	base := c.APIURL
	if params != nil && params.URL != "" {
		base = params.URL
	}

	q := url.Values{}
	months := 3
	if params != nil && params.Months > 0 {
		months = params.Months
	}
	q.Set("months", strconv.Itoa(months))

	var listing listingResponse
	if err := c.getJSON(base+scrapePath, q, &listing); err != nil {
		return nil, fmt.Errorf("fetching tender listing: %w", err)
	}

	c.logger.Debug("got listing from portal", zap.Int("records", len(listing.Data)))

	tenders := &Tenders{}
	for i, record := range listing.Data {
		var raw Raw
		cfg := &mapstructure.DecoderConfig{
			Result:  &raw,
			TagName: "mapstructure",
		}
		decoder, err := mapstructure.NewDecoder(cfg)
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(record); err != nil {
			c.logger.Warn("skipping undecodable tender record",
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		tenders.Items = append(tenders.Items, raw.Canonical())
	}

	return tenders, nil
}

func (c *Client) getJSON(rawURL string, q url.Values, target any) error {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	if target == nil {
		return nil
	}

	return json.Unmarshal(data, target)
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}
