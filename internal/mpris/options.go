// Package mpris exposes the trainer to desktop media keys and widgets over
// the MPRIS D-Bus interface. It is a no-op outside Linux.
package mpris

import "github.com/llehouerou/hifdh/internal/playback"

// VolumeControl is the optional volume surface of the audio player.
type VolumeControl interface {
	Volume() float64
	SetVolume(level float64)
}

// Options configures the adapter. Only Service is required.
type Options struct {
	Service  playback.Service
	Describe DescribeFunc
	Volume   VolumeControl
}
