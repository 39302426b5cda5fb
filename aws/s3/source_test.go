package s3_test

import (
	"testing"

	"github.com/paleodata/lipdk/aws/s3"
)

func TestNewSource(t *testing.T) {
	src, err := s3.NewSource("s3://lipdverse-mirror/CoralHydro2k.zip")
	if err != nil {
		t.Fatalf("getting source: %v", err)
	}
	if src.String() != "s3://lipdverse-mirror/CoralHydro2k.zip" {
		t.Fatalf("unexpected name: %v", src)
	}
}

func TestNewSourceErrors(t *testing.T) {
	for _, location := range []string{
		"https://example.com/arc.zip",
		"s3://bucketonly",
		"s3://bucket/",
		"s3:///key",
	} {
		if _, err := s3.NewSource(location); err == nil {
			t.Fatalf("expected error for '%v'", location)
		}
	}
}
