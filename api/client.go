// Package api is a thin client for the people directory REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"relman/logger"
)

// DefaultTimeout bounds every request made with the default HTTP client.
const DefaultTimeout = 30 * time.Second

// Client talks to the backend rooted at a base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient returns a Client for baseURL. A trailing slash is ignored.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) ListPeople(ctx context.Context) ([]Person, error) {
	var out []Person
	err := c.do(ctx, http.MethodGet, "/pessoas/", nil, &out)
	return out, err
}

func (c *Client) GetPerson(ctx context.Context, id int64) (Person, error) {
	var out Person
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pessoas/%d", id), nil, &out)
	return out, err
}

// Friends lists the people id knows.
func (c *Client) Friends(ctx context.Context, id int64) ([]Person, error) {
	var out []Person
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pessoas/%d/amigos", id), nil, &out)
	return out, err
}

// Similar lists people sharing interests with id.
func (c *Client) Similar(ctx context.Context, id int64) ([]SimilarPerson, error) {
	var out []SimilarPerson
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pessoas/%d/similares", id), nil, &out)
	return out, err
}

// Network lists everyone reachable from id within depth hops.
func (c *Client) Network(ctx context.Context, id int64, depth int) ([]Person, error) {
	var out []Person
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pessoas/%d/rede/%d", id, depth), nil, &out)
	return out, err
}

func (c *Client) SearchByInterest(ctx context.Context, interest string) ([]Person, error) {
	var out []Person
	err := c.do(ctx, http.MethodGet, "/pessoas/interesse/"+url.PathEscape(interest), nil, &out)
	return out, err
}

// Recommendations lists friends of friends id does not know yet.
func (c *Client) Recommendations(ctx context.Context, id int64) ([]Person, error) {
	var out []Person
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/recomendacoes/%d", id), nil, &out)
	return out, err
}

func (c *Client) ShortestPath(ctx context.Context, from, to int64) (Path, error) {
	var out Path
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/caminho/%d/%d", from, to), nil, &out)
	return out, err
}

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var out Stats
	err := c.do(ctx, http.MethodGet, "/estatisticas/", nil, &out)
	return out, err
}

func (c *Client) CreatePerson(ctx context.Context, p NewPerson) (Person, error) {
	if p.Interests == nil {
		p.Interests = []string{}
	}
	var out Person
	err := c.do(ctx, http.MethodPost, "/pessoas/", p, &out)
	return out, err
}

// Connect records that from knows to.
func (c *Client) Connect(ctx context.Context, from, to int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/pessoas/%d/conhece/%d", from, to), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	fail := func(status int, err error) error {
		rerr := &RequestError{Method: method, Path: path, Status: status, Err: err}
		c.log.Error(rerr, "api call failed")
		return rerr
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fail(0, fmt.Errorf("encode body: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fail(0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return fail(resp.StatusCode, nil)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
