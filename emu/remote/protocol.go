package remote

import (
	"fmt"
	"time"

	"github.com/go-faster/jx"

	"plu/emu"
)

// Remote host and emulator communicate via a websocket connection. Every
// message is a JSON object {"event": name, "data": payload}.
//
// Requests, remote -> emulator:
//
//	reset, pause, step     no data
//	memory, processor      no data, the snapshot is sent as an event
//	input                  string, each byte is sent to the serial port
//	log-level              integer, 0 to 3
//	speed                  duration string (e.g "10ms"), delay per instruction
//
// Events, emulator -> remote:
//
//	output                 integer, a byte written to the serial port
//	log                    {"text": string, "repeat": integer}
//	memory                 base64 string, the 64KB address space
//	processor              processor snapshot

// decodeRequest decodes a remote request into the emulator commands it
// stands for.
func decodeRequest(buf []byte) ([]emu.Command, error) {
	var (
		event string
		data  jx.Raw
	)

	err := jx.DecodeBytes(buf).Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "event":
			event, err = d.Str()
		case "data":
			data, err = d.Raw()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("malformed request: %w", err)
	}

	switch event {
	case "reset":
		return []emu.Command{emu.Reset{}}, nil
	case "pause":
		return []emu.Command{emu.TogglePause{}}, nil
	case "step":
		return []emu.Command{emu.StepOnce{}}, nil
	case "memory":
		return []emu.Command{emu.FetchMemory{}}, nil
	case "processor":
		return []emu.Command{emu.FetchProcessor{}}, nil

	case "input":
		s, err := jx.DecodeBytes(data).Str()
		if err != nil {
			return nil, fmt.Errorf("input: %w", err)
		}
		cmds := make([]emu.Command, len(s))
		for i := range len(s) {
			cmds[i] = emu.SendInput{Byte: s[i]}
		}
		return cmds, nil

	case "log-level":
		lvl, err := jx.DecodeBytes(data).Int()
		if err != nil {
			return nil, fmt.Errorf("log-level: %w", err)
		}
		return []emu.Command{emu.SetLogLevel{Level: lvl}}, nil

	case "speed":
		s, err := jx.DecodeBytes(data).Str()
		if err != nil {
			return nil, fmt.Errorf("speed: %w", err)
		}
		delay, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("speed: %w", err)
		}
		return []emu.Command{emu.SetSpeed{Delay: delay}}, nil
	}

	return nil, fmt.Errorf("unknown event %q", event)
}

// encodeEvent encodes ev into e. It returns false if ev has no remote
// representation.
func encodeEvent(e *jx.Encoder, ev emu.Event) bool {
	var name string
	switch ev.(type) {
	case emu.OutputByte:
		name = "output"
	case emu.LogLine:
		name = "log"
	case emu.MemorySnapshot:
		name = "memory"
	case emu.ProcessorSnapshot:
		name = "processor"
	default:
		return false
	}

	e.ObjStart()
	e.FieldStart("event")
	e.Str(name)
	e.FieldStart("data")

	switch ev := ev.(type) {
	case emu.OutputByte:
		e.Int(int(ev))
	case emu.LogLine:
		e.ObjStart()
		e.FieldStart("text")
		e.Str(ev.Text)
		e.FieldStart("repeat")
		e.Int(ev.Repeat)
		e.ObjEnd()
	case emu.MemorySnapshot:
		e.Base64(ev.Data)
	case emu.ProcessorSnapshot:
		ev.CPU.Encode(e)
	}

	e.ObjEnd()
	return true
}
