package main

import (
	"time"

	"github.com/AndrewLester/ntpaltime/pkg/ntptime"
	"github.com/beevik/ntp"
)

type fetchQuery struct {
	client    *ntptime.Client
	server    string
	timeout   time.Duration
	reference bool
}

type fetchResult struct {
	response *ntptime.Response
	check    *referenceCheck
}

// referenceCheck holds a second measurement of the same endpoint taken with
// github.com/beevik/ntp.
type referenceCheck struct {
	offset time.Duration
	err    error
}

func (q fetchQuery) run() (*fetchResult, error) {
	response, err := q.client.Query(q.server)
	if err != nil {
		return nil, err
	}

	result := &fetchResult{response: response}
	if q.reference {
		result.check = checkReference(response, q.timeout)
	}
	return result, nil
}

func checkReference(response *ntptime.Response, timeout time.Duration) *referenceCheck {
	if timeout <= 0 {
		timeout = ntptime.DefaultTimeout
	}

	reference, err := ntp.QueryWithOptions(response.Endpoint.Addr().String(), ntp.QueryOptions{
		Timeout: timeout,
		Port:    int(response.Endpoint.Port()),
	})
	if err != nil {
		return &referenceCheck{err: err}
	}
	return &referenceCheck{offset: reference.ClockOffset}
}

// disagreement is how far the two offset estimates are apart.
func (c *referenceCheck) disagreement(response *ntptime.Response) time.Duration {
	d := response.ClockOffset - c.offset
	if d < 0 {
		d = -d
	}
	return d
}
