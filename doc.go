// lipdk is a toolkit for working with LiPD (Linked Paleo Data) archives in
// Go. It contains the pieces needed to get a multi-site paleoclimate archive
// from wherever it lives into a filterable time series table, and from there
// into maps and plots.
//
// The core of lipdk is a short pipeline. Interfaces and basic implementations
// of each stage are in this package; implementations which rely on other
// software live in sub-packages.
//
// 1. Opener
//
//    An Opener is at the beginning of every analysis. Archives live in many
//    places - lipdverse downloads, S3 buckets, local files - and different
//    Openers know how to get the raw bytes out of each of them behind one
//    small interface. The file, http, and s3 packages provide Openers, and
//    the fetch package picks the right one from a location string. An Opener
//    only produces bytes; it never interprets them. That job falls to the
//    lipd package, so that one codec can serve several sources.
//
// 2. Archive codec
//
//    The lipd package decodes an archive (a zip of datasets, each a jsonld
//    metadata document plus CSV measurement tables) into a Library: the
//    in-memory representation of the whole collection. The codec owns all
//    format details - column numbering, missing value sentinels, nested .lpd
//    bundles - and everything downstream works with decoded values only.
//
// 3. Time series extraction
//
//    ExtractTimeSeries flattens a Library into a TimeSeries table with one
//    row per measured variable. Each row carries the metadata attributes
//    (site, ocean, position, species, group code, resolution statistics)
//    that filters and plots key off of, plus the time and value vectors.
//
// 4. Filtering
//
//    Predicates over named columns (equality, substring, pattern exclusion,
//    numeric range) combine by AND. Applying them one at a time or all at
//    once gives the same rows in the same order.
//
// 5. Rendering
//
//    The render package turns a (filtered) table or its long form into HTML
//    figures - site maps, dashboards, stacked time series plots - using
//    go-echarts. Rendering is a side effect; an empty table renders an empty
//    figure rather than failing.
package lipdk
