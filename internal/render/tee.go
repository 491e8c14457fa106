package render

import "github.com/chabad360/oscwatch/internal/pump"

// MonitorTee fans every record and notice out to each sink, in order.
func MonitorTee(sinks ...pump.MonitorSink) pump.MonitorSink {
	return monitorTee(sinks)
}

type monitorTee []pump.MonitorSink

func (t monitorTee) Record(r pump.Record) {
	for _, s := range t {
		s.Record(r)
	}
}

func (t monitorTee) Malformed(n pump.MalformedNotice) {
	for _, s := range t {
		s.Malformed(n)
	}
}

// SendTee fans every send result out to each sink, in order.
func SendTee(sinks ...pump.SendSink) pump.SendSink {
	return sendTee(sinks)
}

type sendTee []pump.SendSink

func (t sendTee) Result(res pump.SendResult) {
	for _, s := range t {
		s.Result(res)
	}
}
