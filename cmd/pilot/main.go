package main

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/SMerrony/tello"
	"github.com/sirupsen/logrus"

	"github.com/einherij/enterprise"
	"github.com/einherij/enterprise/utils"

	"github.com/einherij/bebop/pkg/arsdk"
	"github.com/einherij/bebop/pkg/arsdk/sim"
	"github.com/einherij/bebop/pkg/arsdk/telloadapter"
	"github.com/einherij/bebop/pkg/bebop"
	"github.com/einherij/bebop/pkg/controller"
	"github.com/einherij/bebop/pkg/discovery"
	"github.com/einherij/bebop/pkg/flightlog"
	"github.com/einherij/bebop/pkg/settings"
	"github.com/einherij/bebop/pkg/telemetry/mqttpub"
	"github.com/einherij/bebop/pkg/telemetry/telesend"
	"github.com/einherij/bebop/pkg/tellointer"
	"github.com/einherij/bebop/pkg/videodecoder/gstdecoder"
	"github.com/einherij/bebop/pkg/videosender"
	"github.com/einherij/bebop/pkg/wsclient"
)

const reconnectInterval = 3 * time.Second

func main() {
	handlerHostURL := os.Getenv("HANDLER_HOST_URL")
	if os.Getenv("DEBUG") != "" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	app := enterprise.NewApplication()

	// connect to interface
	wsClient := wsclient.New(handlerHostURL)
	app.RegisterRunner(wsClient)

	target := discovery.Default()
	if host := os.Getenv("BEBOP_HOST"); host != "" {
		target.Host = host
	}
	if port := os.Getenv("BEBOP_PORT"); port != "" {
		target.Port = utils.Must(strconv.Atoi(port))
	}

	opts := []bebop.Option{}
	if timeout := os.Getenv("BEBOP_CONNECT_TIMEOUT"); timeout != "" {
		opts = append(opts, bebop.WithConnectTimeout(utils.Must(time.ParseDuration(timeout))))
	}
	var rt arsdk.Runtime
	switch os.Getenv("BEBOP_RUNTIME") {
	case "tello":
		rt = telloadapter.New(func() tellointer.Drone { return new(tello.Tello) })
		opts = append(opts, bebop.WithDecoderFactory(gstdecoder.New))
	case "", "sim":
		rt = sim.New(sim.DefaultOptions())
	default:
		logrus.Fatalf("unknown BEBOP_RUNTIME %q", os.Getenv("BEBOP_RUNTIME"))
	}

	var cfg *settings.Config
	if path := os.Getenv("BEBOP_SETTINGS"); path != "" {
		cfg = utils.Must(settings.Load(path))
	}

	device := bebop.New(rt, opts...)
	app.RegisterOnShutdown(func() {
		device.Disconnect()
		logrus.Warnf("device disconnected")
	})

	// keep the device connected
	app.RegisterRunner(runnerFunc(func(ctx context.Context) {
		timer := time.NewTimer(0)
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				if !device.IsConnected() {
					connectDevice(ctx, device, target, cfg)
				}
				timer.Reset(reconnectInterval)
			}
		}
	}))

	// video
	videoSender := videosender.New(handlerHostURL, device, videosender.StreamFrames, false)
	app.RegisterRunner(videoSender)

	// telemetry
	app.RegisterRunner(telesend.New(wsClient, device, telesend.DefaultInterval))
	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		app.RegisterRunner(mqttpub.New(mqttpub.Config{
			Broker:   broker,
			ClientID: os.Getenv("MQTT_CLIENT_ID"),
		}, device))
	}
	if path := os.Getenv("FLIGHT_LOG"); path != "" {
		flights := utils.Must(flightlog.Open(path))
		utils.PanicOnError(flights.Migrate(context.Background()))
		app.RegisterOnShutdown(func() { _ = flights.Close() })
		app.RegisterRunner(flightlog.NewRecorder(flights, device, target.Name, time.Second))
	}

	cmdHandler := controller.New(wsClient, device)
	app.RegisterRunner(cmdHandler)

	app.Run()
}

func connectDevice(ctx context.Context, device *bebop.Device, target discovery.Device, cfg *settings.Config) {
	log := logrus.WithField("target", target.Name)
	if err := device.Connect(ctx, target); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Error(err)
		}
		return
	}
	log.Warnf("device connected")
	if cfg != nil {
		// runtimes without settings support reject this; flying still works
		if err := device.UpdateSettings(cfg); err != nil {
			log.Warn(err)
		}
	}
	if err := device.StartStreaming(); err != nil {
		log.Error(err)
	}
}

type runnerFunc func(ctx context.Context)

func (r runnerFunc) Run(ctx context.Context) {
	r(ctx)
}
