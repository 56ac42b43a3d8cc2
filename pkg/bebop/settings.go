package bebop

import (
	"reflect"

	"github.com/einherij/bebop/pkg/arsdk"
	"github.com/einherij/bebop/pkg/settings"
)

type settingChange struct {
	id   arsdk.SettingID
	args arsdk.Args
}

func settingArgs(cfg *settings.Config) []settingChange {
	p, sp, pic, n := cfg.Piloting, cfg.Speed, cfg.Picture, cfg.Network
	return []settingChange{
		{arsdk.SettingMaxAltitude, arsdk.Args{arsdk.ArgCurrent: p.MaxAltitude}},
		{arsdk.SettingMaxTilt, arsdk.Args{arsdk.ArgCurrent: p.MaxTilt}},
		{arsdk.SettingMaxDistance, arsdk.Args{arsdk.ArgCurrent: p.MaxDistance}},
		{arsdk.SettingNoFlyOverMaxDistance, arsdk.Args{arsdk.ArgEnabled: p.NoFlyOverMaxDistance}},
		{arsdk.SettingAbsolutControl, arsdk.Args{arsdk.ArgEnabled: p.AbsolutControl}},
		{arsdk.SettingMaxVerticalSpeed, arsdk.Args{arsdk.ArgCurrent: sp.MaxVerticalSpeed}},
		{arsdk.SettingMaxRotationSpeed, arsdk.Args{arsdk.ArgCurrent: sp.MaxRotationSpeed}},
		{arsdk.SettingHullProtection, arsdk.Args{arsdk.ArgEnabled: sp.HullProtection}},
		{arsdk.SettingOutdoor, arsdk.Args{arsdk.ArgEnabled: sp.Outdoor}},
		{arsdk.SettingVideoStabilization, arsdk.Args{arsdk.ArgMode: pic.VideoStabilization}},
		{arsdk.SettingVideoFramerate, arsdk.Args{arsdk.ArgFramerate: pic.VideoFramerate}},
		{arsdk.SettingAutoWhiteBalance, arsdk.Args{arsdk.ArgType: pic.AutoWhiteBalance}},
		{arsdk.SettingExposition, arsdk.Args{arsdk.ArgCurrent: pic.Exposition}},
		{arsdk.SettingSaturation, arsdk.Args{arsdk.ArgCurrent: pic.Saturation}},
		{arsdk.SettingWifiSelection, arsdk.Args{arsdk.ArgType: n.WifiSelection, arsdk.ArgBand: n.WifiBand, arsdk.ArgChannel: n.WifiChannel}},
	}
}

// settingChanges lists what must be sent to go from prev to next. A nil prev
// means nothing is known about the vehicle yet.
func settingChanges(prev, next *settings.Config) []settingChange {
	want := settingArgs(next)
	if prev == nil {
		return want
	}
	have := settingArgs(prev)
	var changes []settingChange
	for i := range want {
		if !reflect.DeepEqual(have[i].args, want[i].args) {
			changes = append(changes, want[i])
		}
	}
	return changes
}
