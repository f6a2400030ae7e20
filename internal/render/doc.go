// Package render turns scoring results into terminal tables, JSON
// documents, and Prometheus textfile metrics.
//
// A Renderer is obtained from New for a given Format (table or JSON).
// PromScore and PromScan write the Prometheus textfile form directly to
// an io.Writer.
package render
