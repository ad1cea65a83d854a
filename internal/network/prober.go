// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package network answers whether the agent is online and notifies
// subscribers when that changes.
package network

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/MKhiriev/go-visit-keeper/internal/config"
	"github.com/MKhiriev/go-visit-keeper/internal/utils"
	"github.com/MKhiriev/go-visit-keeper/models"
)

// Prober performs one point-in-time connectivity check.
type Prober interface {
	Probe(ctx context.Context) models.ConnectivityStatus
}

// HTTPProber requests a URL and derives connectivity from the outcome:
//   - any HTTP response: connected and reachable;
//   - dial or DNS failure, including a dial timeout: not connected;
//   - timeout after connecting: connected, reachability unknown;
//   - other transport errors: connected, not reachable.
type HTTPProber struct {
	client *utils.HTTPClient
	url    string
	clock  utils.Clock
}

// NewHTTPProber builds a prober for cfg.ProbeURL bounded by cfg.ProbeTimeout.
func NewHTTPProber(cfg config.ClientNetwork, clock utils.Clock) (*HTTPProber, error) {
	probeURL, err := utils.NormalizeBaseURL(cfg.ProbeURL)
	if err != nil {
		return nil, fmt.Errorf("invalid probe url: %w", err)
	}

	return &HTTPProber{
		client: utils.NewHTTPClient(cfg.ProbeTimeout),
		url:    probeURL,
		clock:  clock,
	}, nil
}

func (p *HTTPProber) Probe(ctx context.Context) models.ConnectivityStatus {
	status := models.ConnectivityStatus{CheckedAt: p.clock.Now()}

	_, err := p.client.R().SetContext(ctx).Get(p.url)
	classifyProbeError(&status, err)

	return status
}

// classifyProbeError fills the connectivity fields of status from the
// outcome of a probe request. A dial that times out never connected, so
// dial failures are checked before timeouts.
func classifyProbeError(status *models.ConnectivityStatus, err error) {
	switch {
	case err == nil:
		status.IsConnected = true
		status.IsInternetReachable = models.Reachable(true)
	case isDialFailure(err):
		status.IsConnected = false
		status.IsInternetReachable = nil
	case isTimeout(err):
		status.IsConnected = true
		status.IsInternetReachable = nil
	default:
		status.IsConnected = true
		status.IsInternetReachable = models.Reachable(false)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isDialFailure(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

// StaticProber always reports Status. Used when no probe URL is wanted and
// the platform pushes statuses through [Monitor.Publish].
type StaticProber struct {
	Status models.ConnectivityStatus
}

func (p StaticProber) Probe(context.Context) models.ConnectivityStatus {
	return p.Status
}
