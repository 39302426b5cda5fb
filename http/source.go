// Copyright 2019 The lipdk authors.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

// Package http provides a lipdk.OpenStringer which downloads archives over
// HTTP(S), optionally through a local cache.
package http

import (
	"bytes"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/paleodata/lipdk"
	"github.com/paleodata/lipdk/cache"
	"github.com/pkg/errors"
)

// Source downloads an archive from a URL. With a cache attached, a hit
// skips the network entirely and a miss stores what it downloaded.
type Source struct {
	url    string
	client *http.Client
	cache  cache.Cache
	stats  lipdk.Statter
	log    lipdk.Logger
}

var _ lipdk.OpenStringer = &Source{}

// Option is a functional option type for Source.
type Option func(s *Source)

// WithClient is an Option which sets the http client used for downloads.
func WithClient(c *http.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// WithCache is an Option which attaches an archive cache to the source.
func WithCache(c cache.Cache) Option {
	return func(s *Source) {
		s.cache = c
	}
}

// WithStatter is an Option which sets the stats collector the source
// reports download counts to.
func WithStatter(stats lipdk.Statter) Option {
	return func(s *Source) {
		s.stats = stats
	}
}

// WithLogger is an Option which sets where the source logs its downloads.
func WithLogger(l lipdk.Logger) Option {
	return func(s *Source) {
		s.log = l
	}
}

// NewSource creates a Source for the given URL - it takes Options which
// modify its behavior.
func NewSource(url string, opts ...Option) *Source {
	s := &Source{
		url:    url,
		client: http.DefaultClient,
		stats:  lipdk.NopStatter{},
		log:    lipdk.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open implements lipdk.Opener. The whole archive is read into memory
// before the ReadCloser is returned, so a short download surfaces here
// rather than as a truncated-zip error later.
func (s *Source) Open() (io.ReadCloser, error) {
	if s.cache != nil {
		data, ok, err := s.cache.Get(s.url)
		if err != nil {
			return nil, errors.Wrap(err, "consulting cache")
		}
		if ok {
			s.stats.Count("cache-hits", 1, 1)
			return ioutil.NopCloser(bytes.NewReader(data)), nil
		}
		s.stats.Count("cache-misses", 1, 1)
	}

	resp, err := s.client.Get(s.url)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %v", s.url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetching %v: status %v", s.url, resp.Status)
	}
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading body of %v", s.url)
	}
	s.stats.Count("bytes-downloaded", int64(len(data)), 1)
	s.log.Debugf("downloaded %v from %v", lipdk.Bytes(len(data)), s.url)

	if s.cache != nil {
		if err := s.cache.Put(s.url, data); err != nil {
			return nil, errors.Wrap(err, "caching download")
		}
	}
	return ioutil.NopCloser(bytes.NewReader(data)), nil
}

// String implements fmt.Stringer.
func (s *Source) String() string { return s.url }
