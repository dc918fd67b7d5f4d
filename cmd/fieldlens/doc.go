// Command fieldlens drives the property-photo review pipeline: sorting
// photos by damage, analyzing grouped photos for maintenance issues, serving
// the review dashboard API, and exporting the approved findings report.
package main
