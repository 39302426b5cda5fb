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

// Package s3 provides a lipdk.OpenStringer for archives in S3 buckets.
package s3

import (
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/paleodata/lipdk"
	"github.com/pkg/errors"
)

// SrcOption is a functional option type for s3.Source.
type SrcOption func(s *Source)

// OptSrcRegion is a SrcOption which sets the AWS region for a Source.
func OptSrcRegion(region string) SrcOption {
	return func(s *Source) {
		s.region = region
	}
}

// Source opens an archive stored as an S3 object.
type Source struct {
	location string
	bucket   string
	key      string
	region   string
}

var _ lipdk.OpenStringer = &Source{}

// NewSource returns a new Source for a location of the form
// s3://bucket/key, with the options applied.
func NewSource(location string, opts ...SrcOption) (*Source, error) {
	const scheme = "s3://"
	if !strings.HasPrefix(location, scheme) {
		return nil, errors.Errorf("'%v' is not an s3:// location", location)
	}
	rest := location[len(scheme):]
	i := strings.Index(rest, "/")
	if i <= 0 || i == len(rest)-1 {
		return nil, errors.Errorf("'%v' has no object key (want s3://bucket/key)", location)
	}
	s := &Source{
		location: location,
		bucket:   rest[:i],
		key:      rest[i+1:],
		region:   "us-east-1",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Open implements lipdk.Opener by fetching the object. The returned
// ReadCloser streams the body; closing it releases the connection.
func (s *Source) Open() (io.ReadCloser, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(s.region)})
	if err != nil {
		return nil, errors.Wrap(err, "getting aws session")
	}
	out, err := s3.New(sess).GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "getting object %v", s.location)
	}
	return out.Body, nil
}

// String implements fmt.Stringer.
func (s *Source) String() string { return s.location }
