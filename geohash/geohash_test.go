package geohash_test

import (
	"testing"

	"github.com/paleodata/lipdk"
	"github.com/paleodata/lipdk/geohash"
)

func TestTransform(t *testing.T) {
	tr := &geohash.Transformer{Precision: 5}
	s := lipdk.Series{Dataset: "X", Lat: 42.605, Lon: -5.603}
	if err := tr.Transform(&s); err != nil {
		t.Fatalf("transforming: %v", err)
	}
	if s.Region != "ezs42" {
		t.Fatalf("unexpected region: %v", s.Region)
	}
}

func TestAnnotate(t *testing.T) {
	ts := lipdk.TimeSeries{
		{Dataset: "A", Lat: -7.9, Lon: 39.5},
		{Dataset: "B", Lat: -21.2, Lon: -159.8},
	}
	tr := &geohash.Transformer{Precision: 3}
	if err := tr.Annotate(ts); err != nil {
		t.Fatalf("annotating: %v", err)
	}
	if ts[0].Region == "" || ts[1].Region == "" {
		t.Fatalf("regions not set: %+v", ts)
	}
	if ts[0].Region == ts[1].Region {
		t.Fatalf("distant sites share a region: %v", ts[0].Region)
	}
	// same cell, same code
	near := lipdk.TimeSeries{{Lat: -7.91, Lon: 39.51}}
	if err := tr.Annotate(near); err != nil {
		t.Fatalf("annotating: %v", err)
	}
	if near[0].Region != ts[0].Region {
		t.Fatalf("nearby sites in different regions: %v vs %v", near[0].Region, ts[0].Region)
	}
}

func TestTransformErrors(t *testing.T) {
	tr := &geohash.Transformer{Precision: 0}
	s := lipdk.Series{}
	if err := tr.Transform(&s); err == nil {
		t.Fatal("expected error for precision 0")
	}
	tr = &geohash.Transformer{Precision: 5}
	s = lipdk.Series{Lat: 91}
	if err := tr.Transform(&s); err == nil {
		t.Fatal("expected error for bad latitude")
	}
}
