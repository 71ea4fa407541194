// Package gaze converts eye orientation quaternions into gaze angles.
package gaze
