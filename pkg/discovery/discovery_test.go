package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DiscoverySuite struct {
	suite.Suite
}

func TestDiscoverySuite(t *testing.T) {
	suite.Run(t, new(DiscoverySuite))
}

func (s *DiscoverySuite) TestDefaults() {
	addr, err := NetResolver{}.Resolve(context.Background(), Device{Name: "bebop"})
	s.NoError(err)
	s.Equal("192.168.42.1:44444", addr)
}

func (s *DiscoverySuite) TestLiteralAddress() {
	addr, err := NetResolver{}.Resolve(context.Background(), Device{Host: "10.0.0.7", Port: 5555})
	s.NoError(err)
	s.Equal("10.0.0.7:5555", addr)
}

func (s *DiscoverySuite) TestLocalhost() {
	addr, err := NetResolver{}.Resolve(context.Background(), Device{Host: "localhost", Port: 44444})
	s.NoError(err)
	s.Contains(addr, ":44444")
}

func (s *DiscoverySuite) TestInvalidPort() {
	_, err := NetResolver{}.Resolve(context.Background(), Device{Host: "10.0.0.7", Port: 70000})
	s.Error(err)
}
