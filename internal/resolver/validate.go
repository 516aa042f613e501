package resolver

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/dmendivil/cuevanago/internal/util"
)

// ProbeValidator checks reachability with a HEAD request, falling back to a
// one-byte ranged GET for servers that reject HEAD.
type ProbeValidator struct {
	Client    *http.Client
	UserAgent string
}

// NewProbeValidator returns a validator over the shared HTTP client.
func NewProbeValidator() *ProbeValidator {
	return &ProbeValidator{
		Client:    util.GetSharedClient(),
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	}
}

// Validate returns nil when the URL answers with a success status,
// ErrLinkDead when the server says the resource is gone, and a transient
// error otherwise.
func (v *ProbeValidator) Validate(url string) error {
	req, err := http.NewRequest(http.MethodHead, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build probe request")
	}
	req.Header.Set("User-Agent", v.UserAgent)

	resp, err := v.Client.Do(req)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented {
		if resp != nil {
			_ = resp.Body.Close()
		}
		req, err = http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return errors.Wrap(err, "failed to build probe request")
		}
		req.Header.Set("User-Agent", v.UserAgent)
		req.Header.Set("Range", "bytes=0-0")
		resp, err = v.Client.Do(req)
		if err != nil {
			return errors.Wrap(err, "probe request failed")
		}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusPartialContent:
		return nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusForbidden:
		return errors.Wrapf(ErrLinkDead, "status %s", resp.Status)
	default:
		return errors.Errorf("unexpected probe status %s", resp.Status)
	}
}
