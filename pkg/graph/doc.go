// Package graph defines the pipeline graph for geoflow. A pipeline graph
// is a set of named stages and the links between their inputs and
// outputs. It is validated as a whole before it is built into connected
// pipeline nodes and run from its sink.
package graph
