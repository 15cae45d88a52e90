package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/voidshard/logogen/pkg/api/http/common"
	"github.com/voidshard/logogen/pkg/structs"
)

const (
	defPollInterval = 2 * time.Second
)

type Client struct {
	url  *url.URL
	http *http.Client

	// PollInterval is how often WaitForJob asks for a job
	PollInterval time.Duration
}

func New(address string) (*Client, error) {
	u, err := url.Parse(address)
	return &Client{url: u, http: &http.Client{Timeout: 30 * time.Second}, PollInterval: defPollInterval}, err
}

// CreateJob submits a new job; the returned job is already processing.
func (c *Client) CreateJob(ctx context.Context, cjr *structs.CreateJobRequest) (*structs.Job, error) {
	var out structs.Job
	return &out, c.do(ctx, http.MethodPost, c.addr(common.API_JOBS), cjr, &out)
}

func (c *Client) Job(ctx context.Context, id string) (*structs.Job, error) {
	var out structs.Job
	path := strings.Replace(common.API_JOB, "{id}", url.PathEscape(id), 1)
	return &out, c.do(ctx, http.MethodGet, c.addr(path), nil, &out)
}

// Health writes the health document, firing the server side health probe.
func (c *Client) Health(ctx context.Context) (*structs.Health, error) {
	var out structs.Health
	return &out, c.do(ctx, http.MethodPost, c.addr(common.API_HEALTH), nil, &out)
}

// WaitForJob polls a job until it reaches a final status or ctx is done.
func (c *Client) WaitForJob(ctx context.Context, id string) (*structs.Job, error) {
	interval := c.PollInterval
	if interval <= 0 {
		interval = defPollInterval
	}
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		job, err := c.Job(ctx, id)
		if err != nil {
			return nil, err
		}
		if structs.IsFinalStatus(job.Status) {
			return job, nil
		}
		select {
		case <-ctx.Done():
			return job, ctx.Err()
		case <-tick.C:
		}
	}
}

func (c *Client) addr(path string) *url.URL {
	return &url.URL{Scheme: c.url.Scheme, Host: c.url.Host, Path: path}
}
