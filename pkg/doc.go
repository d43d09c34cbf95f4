// Package pkg holds the libraries behind genfigs, which redraws the figures
// of "Evolution of default genetic control mechanisms" (PLoS ONE, 2021)
// from their data tables.
//
// # Overview
//
//  1. [dataset] - reading the CSV/TXT tables into named columns
//  2. [figure] - chart construction: layers, axes, legends, colorbars and
//     the projected 3D box, plus [figure/sink] for encoding
//  3. [catalog] - the paper's figures as declarative specs
//  4. [pipeline] - load → build → encode → persist, with caching
//  5. [cache] - file and Redis artifact caches
//
// # Data flow
//
//	data/figure_*.csv
//	         ↓
//	    [dataset] Table
//	         ↓
//	    [figure] Build(spec, table) → Chart
//	         ↓
//	    [figure/sink] Encode → PDF/SVG/PNG/JPEG/TIFF bytes
//	         ↓
//	    [pipeline] atomic write, optional viewer
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	job, _ := pipeline.NewJob("4")
//	res, err := runner.Render(ctx, job)
//
// Supporting packages: [errors] (coded errors), [observability] (hooks),
// [buildinfo] (version stamping).
package pkg
