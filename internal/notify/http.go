package notify

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "clixs-waitlist-api"

// NewHTTPClient returns the resty client shared by the HTTP channels. Retries
// stay disabled: a failed delivery is reported once and dropped.
func NewHTTPClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent)
}

func checkResponse(channel string, resp *resty.Response) error {
	if resp.IsError() {
		return fmt.Errorf("%s: unexpected status %d", channel, resp.StatusCode())
	}
	return nil
}
