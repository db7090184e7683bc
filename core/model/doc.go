// Package model holds the hour-of-day traffic baseline. A TrafficModel keeps a
// running average per hour and predicts the expected traffic at any
// fractional time of day by linear interpolation between adjacent hours.
package model
