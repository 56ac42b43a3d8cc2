package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SettingsSuite struct {
	suite.Suite
}

func TestSettingsSuite(t *testing.T) {
	suite.Run(t, new(SettingsSuite))
}

func (s *SettingsSuite) TestDefaultIsValid() {
	cfg := Default()
	s.NoError(Validate(&cfg))
}

func (s *SettingsSuite) TestLoadOverridesDefaults() {
	path := filepath.Join(s.T().TempDir(), "bebop.yaml")
	yml := `piloting:
  max_altitude: 30
  max_tilt: 12
speed:
  hull_protection: true
picture:
  video_framerate: 24fps
`
	s.Require().NoError(os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := Load(path)
	s.Require().NoError(err)
	s.Equal(30.0, cfg.Piloting.MaxAltitude)
	s.Equal(12.0, cfg.Piloting.MaxTilt)
	s.Equal(2000.0, cfg.Piloting.MaxDistance)
	s.True(cfg.Speed.HullProtection)
	s.True(cfg.Speed.Outdoor)
	s.Equal("24fps", cfg.Picture.VideoFramerate)
	s.Equal("auto", cfg.Network.WifiSelection)
}

func (s *SettingsSuite) TestInvalidValues() {
	_, err := Parse([]byte("piloting:\n  max_altitude: 500\n"))
	s.ErrorContains(err, "max_altitude")

	_, err = Parse([]byte("picture:\n  video_stabilization: wobbly\n"))
	s.ErrorContains(err, "video_stabilization")

	_, err = Parse([]byte("piloting: [1, 2"))
	s.ErrorContains(err, "failed to parse settings")
}

func (s *SettingsSuite) TestMissingFile() {
	_, err := Load(filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.Error(err)
}
