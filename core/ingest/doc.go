// Package ingest turns traffic log lines into measures for the baseline.
//
// A line reads "10.01.2021 18:15 Cisco 5300, port1  708.117": a day.month.year
// date, an hour:minute time, a free-form device label and the traffic value
// as the last field. ParseLine reports malformed input as *ParseError;
// Loader feeds whole files into a model.Accumulator.
package ingest
