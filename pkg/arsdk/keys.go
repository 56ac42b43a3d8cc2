package arsdk

import "fmt"

// DictionaryKey identifies one kind of state or setting event.
type DictionaryKey uint32

// Known dictionary keys. Runtimes may emit keys outside this set.
const (
	KeyCommonAllStatesChanged DictionaryKey = iota + 1
	KeyCommonBatteryStateChanged
	KeyCommonWifiSignalChanged
	KeyCommonAllSettingsChanged
	KeyCommonProductNameChanged
	KeyCommonProductVersionChanged
	KeyCommonMagnetoCalibrationRequired
	KeyCommonOverHeatChanged
	KeyCommonSensorsStatesChanged

	KeyPilotingFlatTrimChanged
	KeyPilotingFlyingStateChanged
	KeyPilotingAlertStateChanged
	KeyPilotingNavigateHomeStateChanged
	KeyPilotingPositionChanged
	KeyPilotingSpeedChanged
	KeyPilotingAttitudeChanged
	KeyPilotingAltitudeChanged

	KeyCameraOrientationChanged
	KeyMediaStreamingVideoEnableChanged

	KeyGPSNumberOfSatelliteChanged
	KeyGPSFixStateChanged
	KeyGPSHomeChanged

	KeySettingsMaxAltitudeChanged
	KeySettingsMaxTiltChanged
	KeySettingsMaxDistanceChanged
	KeySettingsNoFlyOverMaxDistanceChanged
	KeySettingsAbsolutControlChanged
	KeySettingsMaxVerticalSpeedChanged
	KeySettingsMaxRotationSpeedChanged
	KeySettingsHullProtectionChanged
	KeySettingsOutdoorChanged
	KeySettingsVideoStabilizationChanged
	KeySettingsVideoFramerateChanged
	KeySettingsAutoWhiteBalanceChanged
	KeySettingsExpositionChanged
	KeySettingsSaturationChanged
	KeySettingsWifiSelectionChanged

	keyEnd = iota + 1
)

var keyNames = map[DictionaryKey]string{
	KeyCommonAllStatesChanged:           "common.all_states",
	KeyCommonBatteryStateChanged:        "common.battery",
	KeyCommonWifiSignalChanged:          "common.wifi_signal",
	KeyCommonAllSettingsChanged:         "common.all_settings",
	KeyCommonProductNameChanged:         "common.product_name",
	KeyCommonProductVersionChanged:      "common.product_version",
	KeyCommonMagnetoCalibrationRequired: "common.magneto_calibration_required",
	KeyCommonOverHeatChanged:            "common.overheat",
	KeyCommonSensorsStatesChanged:       "common.sensors",

	KeyPilotingFlatTrimChanged:          "piloting.flat_trim",
	KeyPilotingFlyingStateChanged:       "piloting.flying_state",
	KeyPilotingAlertStateChanged:        "piloting.alert_state",
	KeyPilotingNavigateHomeStateChanged: "piloting.navigate_home",
	KeyPilotingPositionChanged:          "piloting.position",
	KeyPilotingSpeedChanged:             "piloting.speed",
	KeyPilotingAttitudeChanged:          "piloting.attitude",
	KeyPilotingAltitudeChanged:          "piloting.altitude",

	KeyCameraOrientationChanged:         "camera.orientation",
	KeyMediaStreamingVideoEnableChanged: "media_streaming.video_enable",

	KeyGPSNumberOfSatelliteChanged: "gps.satellites",
	KeyGPSFixStateChanged:          "gps.fix",
	KeyGPSHomeChanged:              "gps.home",

	KeySettingsMaxAltitudeChanged:          "settings.max_altitude",
	KeySettingsMaxTiltChanged:              "settings.max_tilt",
	KeySettingsMaxDistanceChanged:          "settings.max_distance",
	KeySettingsNoFlyOverMaxDistanceChanged: "settings.no_fly_over_max_distance",
	KeySettingsAbsolutControlChanged:       "settings.absolut_control",
	KeySettingsMaxVerticalSpeedChanged:     "settings.max_vertical_speed",
	KeySettingsMaxRotationSpeedChanged:     "settings.max_rotation_speed",
	KeySettingsHullProtectionChanged:       "settings.hull_protection",
	KeySettingsOutdoorChanged:              "settings.outdoor",
	KeySettingsVideoStabilizationChanged:   "settings.video_stabilization",
	KeySettingsVideoFramerateChanged:       "settings.video_framerate",
	KeySettingsAutoWhiteBalanceChanged:     "settings.auto_white_balance",
	KeySettingsExpositionChanged:           "settings.exposition",
	KeySettingsSaturationChanged:           "settings.saturation",
	KeySettingsWifiSelectionChanged:        "settings.wifi_selection",
}

func (k DictionaryKey) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", uint32(k))
}

// Keys returns every known dictionary key in declaration order.
func Keys() []DictionaryKey {
	keys := make([]DictionaryKey, 0, keyEnd-1)
	for k := DictionaryKey(1); k < keyEnd; k++ {
		keys = append(keys, k)
	}
	return keys
}

// SettingID selects the setting written by Controller.SendSetting.
type SettingID uint16

const (
	SettingMaxAltitude SettingID = iota + 1
	SettingMaxTilt
	SettingMaxDistance
	SettingNoFlyOverMaxDistance
	SettingAbsolutControl
	SettingMaxVerticalSpeed
	SettingMaxRotationSpeed
	SettingHullProtection
	SettingOutdoor
	SettingVideoStabilization
	SettingVideoFramerate
	SettingAutoWhiteBalance
	SettingExposition
	SettingSaturation
	SettingWifiSelection
)

// SettingKeys maps every setting to the key the device answers with.
var SettingKeys = map[SettingID]DictionaryKey{
	SettingMaxAltitude:          KeySettingsMaxAltitudeChanged,
	SettingMaxTilt:              KeySettingsMaxTiltChanged,
	SettingMaxDistance:          KeySettingsMaxDistanceChanged,
	SettingNoFlyOverMaxDistance: KeySettingsNoFlyOverMaxDistanceChanged,
	SettingAbsolutControl:       KeySettingsAbsolutControlChanged,
	SettingMaxVerticalSpeed:     KeySettingsMaxVerticalSpeedChanged,
	SettingMaxRotationSpeed:     KeySettingsMaxRotationSpeedChanged,
	SettingHullProtection:       KeySettingsHullProtectionChanged,
	SettingOutdoor:              KeySettingsOutdoorChanged,
	SettingVideoStabilization:   KeySettingsVideoStabilizationChanged,
	SettingVideoFramerate:       KeySettingsVideoFramerateChanged,
	SettingAutoWhiteBalance:     KeySettingsAutoWhiteBalanceChanged,
	SettingExposition:           KeySettingsExpositionChanged,
	SettingSaturation:           KeySettingsSaturationChanged,
	SettingWifiSelection:        KeySettingsWifiSelectionChanged,
}

func (id SettingID) String() string {
	if k, ok := SettingKeys[id]; ok {
		return k.String()
	}
	return fmt.Sprintf("setting(%d)", uint16(id))
}
