// Package config defines the settings shared by the facetrack binaries and
// provides helpers to load, validate and save them in YAML format.
//
// Every field can be overridden from the environment with a FACETRACK_ prefix,
// for example FACETRACK_CHANNEL_DIR or FACETRACK_LOG_LEVEL. A missing settings
// file is not an error: the bridge must run without any setup.
package config
