package bsky

import (
	"time"

	"resty.dev/v3"
)

type ClientConfig struct {
	// Service is the base URL of the PDS to talk to.
	Service string

	TransportSettings *resty.TransportSettings

	RequestMiddlewares  []resty.RequestMiddleware
	ResponseMiddlewares []resty.ResponseMiddleware
}

var DefaultConfig = &ClientConfig{
	Service: DefaultService,
	TransportSettings: &resty.TransportSettings{
		DialerTimeout:         5 * time.Second,
		DialerKeepAlive:       5 * time.Second,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 5 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
	},
}
