// Package monitor writes board events and a heartbeat to a log sink.
package monitor

import (
	"context"
	"io"
	"time"

	"ubmp4-tones/bus"
	boardcfg "ubmp4-tones/services/board/config"
	"ubmp4-tones/types"
	"ubmp4-tones/x/conv"
)

var (
	topicBoard         = bus.T("board", "#")
	topicConfigMonitor = bus.T("config", "monitor")
	topicConfigBoard   = bus.T("config", "board")
)

const defaultInterval = time.Second

type Service struct {
	// Out receives one line per event. nil => console.
	Out io.Writer
	// Interval between heartbeat lines; <= 0 => one second. config/monitor
	// {interval: s} and config/board {heartbeat_ms: ms} change it at runtime.
	Interval time.Duration
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	boardSub := conn.Subscribe(topicBoard)
	cfgSub := conn.Subscribe(topicConfigMonitor)
	boardCfgSub := conn.Subscribe(topicConfigBoard)
	defer conn.Unsubscribe(boardSub)
	defer conn.Unsubscribe(cfgSub)
	defer conn.Unsubscribe(boardCfgSub)

	iv := s.Interval
	if iv <= 0 {
		iv = defaultInterval
	}
	tick := time.NewTicker(iv)
	defer tick.Stop()

	var events uint64
	line := make([]byte, 0, 64)
	for {
		select {
		case <-ctx.Done():
			s.write(append(line[:0], "Info: monitor stopping\n"...))
			return
		case t := <-tick.C:
			line = append(line[:0], "Info: "...)
			line = append(line, t.Format("15:04:05")...)
			line = append(line, " Heartbeat events="...)
			line = conv.AppendInt(line, int64(events))
			s.write(append(line, '\n'))
		case msg := <-boardSub.Channel():
			events++
			if line = Format(line[:0], msg); len(line) > 0 {
				s.write(line)
			}
		case msg := <-cfgSub.Channel():
			// {interval: seconds}
			if d, ok := period(msg.Payload, "interval", time.Second); ok {
				tick.Reset(d)
				s.logInterval(line[:0], d)
			}
		case msg := <-boardCfgSub.Channel():
			if d, ok := boardPeriod(msg.Payload); ok {
				tick.Reset(d)
				s.logInterval(line[:0], d)
			}
		}
	}
}

func (s *Service) logInterval(line []byte, d time.Duration) {
	line = append(line, "Info: heartbeat interval set to "...)
	line = conv.AppendInt(line, int64(d/time.Millisecond))
	s.write(append(line, " ms\n"...))
}

// period reads key from a JSON-shaped payload as a count of unit. Values that
// round to less than a nanosecond are rejected.
func period(payload any, key string, unit time.Duration) (time.Duration, bool) {
	m, ok := payload.(map[string]any)
	if !ok {
		return 0, false
	}
	v, ok := m[key].(float64)
	if !ok {
		return 0, false
	}
	d := time.Duration(v * float64(unit))
	return d, d > 0
}

// boardPeriod reads heartbeat_ms from a config/board override or a full
// board config.
func boardPeriod(payload any) (time.Duration, bool) {
	if c, ok := payload.(boardcfg.Config); ok {
		d := time.Duration(c.HeartbeatMs) * time.Millisecond
		return d, d > 0
	}
	return period(payload, "heartbeat_ms", time.Millisecond)
}

func (s *Service) write(b []byte) {
	if s.Out == nil {
		print(string(b))
		return
	}
	_, _ = s.Out.Write(b)
}

// Start runs the monitor until ctx is cancelled.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}

// Format appends the log line for a board message to dst. Unknown payloads
// append nothing.
func Format(dst []byte, msg *bus.Message) []byte {
	switch v := msg.Payload.(type) {
	case types.BoardState:
		dst = append(dst, "[board] state "...)
		dst = append(dst, v.Level...)
		dst = append(dst, " mode "...)
		dst = append(dst, v.Mode...)
	case types.ButtonEvent:
		dst = append(dst, "[board] button "...)
		dst = append(dst, v.Name...)
		dst = append(dst, ' ')
		dst = conv.AppendInt(dst, int64(v.Value))
	case types.ToneEvent:
		dst = append(dst, "[board] tone "...)
		dst = conv.AppendInt(dst, int64(v.HalfPeriodUs))
		dst = append(dst, "us x"...)
		dst = conv.AppendInt(dst, int64(v.Cycles))
	case types.LEDValue:
		dst = append(dst, "[board] led "...)
		if v.ID == 0 {
			dst = append(dst, "all off"...)
			break
		}
		dst = conv.AppendInt(dst, int64(v.ID))
		if v.On {
			dst = append(dst, " on"...)
		} else {
			dst = append(dst, " off"...)
		}
	case types.BrightnessValue:
		dst = append(dst, "[board] brightness "...)
		dst = conv.AppendDigits(dst, v.Level)
	default:
		return dst
	}
	return append(dst, '\n')
}
