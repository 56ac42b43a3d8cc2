// Package tellointer is the subset of *tello.Tello the Tello runtime adapter
// drives, so the adapter can be tested without a vehicle.
package tellointer

import (
	"github.com/SMerrony/tello"
)

//go:generate mockgen -destination=mock_tellointer/drone.go -package=mock_tellointer github.com/einherij/bebop/pkg/tellointer Drone

type Drone interface {
	ControlConnectDefault() (err error)
	ControlDisconnect()

	VideoConnectDefault() (<-chan []byte, error)
	VideoDisconnect()
	SetVideoWide()
	GetVideoSpsPps()

	GetFlightData() tello.FlightData

	TakeOff()
	Land()
	Hover()
	Flip(dir tello.FlipType)
	SetSportsMode(sports bool)
	UpdateSticks(sm tello.StickMessage)
}

var _ Drone = (*tello.Tello)(nil)
