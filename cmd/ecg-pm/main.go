// Command ecg-pm samples a single-channel ECG front-end at a fixed rate
// and emits one sample value per tick to stdout and optionally to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RouterInfoMan/ecg-pm/internal/adc"
	"github.com/RouterInfoMan/ecg-pm/internal/config"
	"github.com/RouterInfoMan/ecg-pm/internal/gpio"
	"github.com/RouterInfoMan/ecg-pm/internal/leads"
	"github.com/RouterInfoMan/ecg-pm/internal/mqtt"
	"github.com/RouterInfoMan/ecg-pm/internal/sampler"
	"github.com/RouterInfoMan/ecg-pm/internal/status"
	"github.com/RouterInfoMan/ecg-pm/internal/web"
)

// connCheckTicks is how often the run loop refreshes the MQTT
// connection flag in the status tracker. Checking every tick would put
// a client-library call on the 4 ms path for a value that only feeds
// the status page.
const connCheckTicks = 250

func main() {
	defaults := config.Default()

	configPath := flag.String("config", "", "YAML configuration file (optional)")
	period := flag.Duration("period", defaults.Period(), "Sampling period")
	broker := flag.String("broker", defaults.MQTT.Broker, "MQTT broker address (empty to disable)")
	heartbeat := flag.Duration("heartbeat", defaults.Heartbeat(), "Heartbeat interval (0 to disable)")
	pinLED := flag.Int("pin-led", defaults.Pins.LED, "BCM pin number for the indicator LED")
	pinLOPlus := flag.Int("pin-lo-plus", defaults.Pins.LOPlus, "BCM pin number for the LO+ leads-off line")
	pinLOMinus := flag.Int("pin-lo-minus", defaults.Pins.LOMinus, "BCM pin number for the LO- leads-off line")
	adcBus := flag.String("adc-bus", defaults.ADC.Bus, "I2C bus name (empty for the first available)")
	adcChannel := flag.Int("adc-channel", defaults.ADC.Channel, "ADS1115 input channel (0-3)")
	printLeads := flag.Bool("print-leads", false, "Print leads-off line levels and exit")
	httpAddr := flag.String("http", defaults.HTTP.Addr, "HTTP status address (empty to disable)")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	// Flags given on the command line win over file values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "period":
			cfg.PeriodMs = period.Milliseconds()
		case "broker":
			cfg.MQTT.Broker = *broker
		case "heartbeat":
			cfg.HeartbeatMs = heartbeat.Milliseconds()
		case "pin-led":
			cfg.Pins.LED = *pinLED
		case "pin-lo-plus":
			cfg.Pins.LOPlus = *pinLOPlus
		case "pin-lo-minus":
			cfg.Pins.LOMinus = *pinLOMinus
		case "adc-bus":
			cfg.ADC.Bus = *adcBus
		case "adc-channel":
			cfg.ADC.Channel = *adcChannel
		case "http":
			cfg.HTTP.Addr = *httpAddr
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if err := run(cfg, *printLeads); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg *config.Config, printLeads bool) error {
	// Initialize GPIO
	leadLines, err := gpio.NewRealLeads(cfg.Pins.LOPlus, cfg.Pins.LOMinus)
	if err != nil {
		return fmt.Errorf("init leads-off lines: %w", err)
	}
	defer leadLines.Close()

	monitor := leads.NewMonitor(leadLines)

	// Print leads mode
	if printLeads {
		loPlus, loMinus, err := leadLines.Read()
		if err != nil {
			return fmt.Errorf("read leads-off lines: %w", err)
		}
		contact, err := monitor.Contact()
		if err != nil {
			return fmt.Errorf("check contact: %w", err)
		}
		fmt.Printf("LO+: %s, LO-: %s, contact: %v\n", levelString(loPlus), levelString(loMinus), contact)
		return nil
	}

	indicator, err := gpio.NewRealIndicator(cfg.Pins.LED)
	if err != nil {
		return fmt.Errorf("init indicator: %w", err)
	}
	defer indicator.Close()

	// Initialize ADC
	channel, err := adc.NewADS1115(cfg.ADC.Bus, cfg.ADC.Address, cfg.ADC.Channel)
	if err != nil {
		return fmt.Errorf("init adc: %w", err)
	}
	defer channel.Close()

	// Initialize MQTT (optional; the stdout stream never depends on it)
	emitters := []sampler.Emitter{sampler.NewLineWriter(os.Stdout)}

	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if cfg.MQTT.Broker != "" {
		real, err := mqtt.NewRealPublisher(cfg.MQTT.Broker)
		if err != nil {
			return fmt.Errorf("init mqtt: %w", err)
		}
		defer real.Close()
		publisher = real
		mqttStatus = real
		emitters = append(emitters, sampler.EmitterFunc(real.Publish))
	}

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PeriodMs:    cfg.PeriodMs,
		HeartbeatMs: cfg.HeartbeatMs,
		Broker:      cfg.MQTT.Broker,
		HTTPAddr:    cfg.HTTP.Addr,
		PinLED:      cfg.Pins.LED,
		PinLOPlus:   cfg.Pins.LOPlus,
		PinLOMinus:  cfg.Pins.LOMinus,
		ADCChannel:  cfg.ADC.Channel,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Publish startup event with full status snapshot
	if publisher != nil {
		snap := tracker.Snapshot()
		startupEvent := mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := publisher.PublishSystem(startupEvent); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	// Start HTTP status server
	if cfg.HTTP.Addr != "" {
		srv := web.New(cfg.HTTP.Addr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTP.Addr)
	}

	log.Printf("sampling: period=%v (%d Hz) broker=%s heartbeat=%v", cfg.Period(), time.Second/cfg.Period(), cfg.MQTT.Broker, cfg.Heartbeat())

	s := sampler.New(indicator, monitor, channel, emitters...)

	ticker := time.NewTicker(cfg.Period())
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(s, publisher, mqttStatus, tracker, cfg.Heartbeat(), time.Now, ticker.C, sigCh)
}

// runLoop drains the ticker until a shutdown signal arrives. It is the
// only goroutine that calls Tick, which is what keeps the indicator
// toggle and the emitters free of concurrent invocations.
func runLoop(s *sampler.Sampler, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()
	lastHeartbeat := startTime
	var ticks uint64

	for {
		select {
		case sgn := <-sig:
			log.Printf("received %v, shutting down", sgn)
			signalName := "UNKNOWN"
			if sgn == syscall.SIGINT {
				signalName = "SIGINT"
			} else if sgn == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			if publisher == nil {
				return nil
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			rec := s.Tick()
			ticks++

			// Update status tracker for HTTP/MQTT consumers
			if tracker != nil {
				tracker.Observe(rec, s.IndicatorOn())
				if mqttStatus != nil && ticks%connCheckTicks == 0 {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			// Check for heartbeat
			if heartbeat > 0 && publisher != nil {
				t := now()
				if t.Sub(lastHeartbeat) >= heartbeat {
					lastHeartbeat = t

					hbEvent := mqtt.SystemEvent{
						Timestamp: t,
						Event:     "HEARTBEAT",
					}
					if tracker != nil {
						if mqttStatus != nil {
							tracker.SetMQTTConnected(mqttStatus.IsConnected())
						}
						// Refresh network info for heartbeat
						if net := readNetworkInfo(); net != nil {
							tracker.SetNetwork(net)
						}
						snap := tracker.Snapshot()
						hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
						log.Printf("heartbeat: uptime=%v ticks=%d no_contact=%d",
							snap.Uptime().Truncate(time.Second), snap.Counts.Ticks, snap.Counts.NoContact)
					}
					if err := publisher.PublishSystem(hbEvent); err != nil {
						log.Printf("heartbeat publish error: %v", err)
					}
				}
			}
		}
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}

func levelString(high bool) string {
	if high {
		return "HIGH"
	}
	return "LOW"
}
