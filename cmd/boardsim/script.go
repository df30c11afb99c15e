//go:build !rp2040

package main

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"ubmp4-tones/bus"
	"ubmp4-tones/services/board"

	"github.com/google/shlex"
)

// A script is a list of commands separated by newlines or ';', each split
// like a shell line ('#' starts a comment):
//
//	press SW2; wait 50ms; release SW2
//	mode dimmer
//	set brightness_step 5 continuous_dimmer true
//	expect led 5 on
//	expect resets 1
//	status
type command struct {
	line int
	name string
	args []string
}

// min and max argument counts; max -1 => unbounded
var arity = map[string][2]int{
	"press":   {1, 1},
	"release": {1, 1},
	"wait":    {1, 1},
	"mode":    {1, 1},
	"set":     {2, -1},
	"expect":  {2, 3},
	"status":  {0, 0},
}

func parseScript(src string) ([]command, error) {
	var out []command
	for i, ln := range strings.Split(src, "\n") {
		for _, seg := range strings.Split(ln, ";") {
			words, err := shlex.Split(seg)
			if err != nil {
				return nil, lineErr(i+1, err.Error())
			}
			if len(words) == 0 {
				continue
			}
			c := command{line: i + 1, name: words[0], args: words[1:]}
			if err := c.check(); err != nil {
				return nil, err
			}
			out = append(out, c)
		}
	}
	return out, nil
}

func (c command) check() error {
	a, ok := arity[c.name]
	if !ok {
		return lineErr(c.line, "unknown command "+c.name)
	}
	if n := len(c.args); n < a[0] || (a[1] >= 0 && n > a[1]) {
		return lineErr(c.line, c.name+": wrong number of arguments")
	}
	if c.name == "set" && len(c.args)%2 != 0 {
		return lineErr(c.line, "set: expects key value pairs")
	}
	if c.name == "wait" {
		if _, err := time.ParseDuration(c.args[0]); err != nil {
			return lineErr(c.line, err.Error())
		}
	}
	return nil
}

func lineErr(line int, msg string) error {
	return errors.New("line " + strconv.Itoa(line) + ": " + msg)
}

// scalar turns a script word into the value a JSON decoder would produce.
func scalar(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func runScript(sim *board.Sim, ui *bus.Connection, cmds []command) error {
	for _, c := range cmds {
		var err error
		switch c.name {
		case "press":
			err = sim.Press(c.args[0])
		case "release":
			err = sim.Release(c.args[0])
		case "wait":
			d, _ := time.ParseDuration(c.args[0])
			time.Sleep(d)
		case "mode":
			publishOverride(ui, map[string]any{"mode": c.args[0]})
		case "set":
			m := make(map[string]any, len(c.args)/2)
			for i := 0; i < len(c.args); i += 2 {
				m[c.args[i]] = scalar(c.args[i+1])
			}
			publishOverride(ui, m)
		case "expect":
			err = expect(sim, c.args)
		case "status":
			printStatus(sim)
		}
		if err != nil {
			return lineErr(c.line, err.Error())
		}
	}
	return nil
}

func publishOverride(ui *bus.Connection, m map[string]any) {
	ui.Publish(ui.NewMessage(board.TopicConfig, m, true))
	// Let the loop pick the override up between iterations.
	time.Sleep(20 * time.Millisecond)
}

// expect led <id> on|off
// expect resets <n>
func expect(sim *board.Sim, args []string) error {
	switch args[0] {
	case "led":
		if len(args) != 3 {
			return errors.New("expect led <id> on|off")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil || id < 2 || id > 6 {
			return errors.New("led id must be 2..6")
		}
		want := args[2] == "on"
		if sim.LEDs()[id-2] != want {
			return errors.New("LED" + args[1] + " is not " + args[2])
		}
	case "resets":
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		if got := sim.Resets(); got != n {
			return errors.New("resets = " + strconv.Itoa(got) + ", want " + args[1])
		}
	default:
		return errors.New("cannot expect " + args[0])
	}
	return nil
}

func printStatus(sim *board.Sim) {
	leds := sim.LEDs()
	var b strings.Builder
	for i, on := range leds {
		b.WriteString(" LED")
		b.WriteString(strconv.Itoa(i + 2))
		if on {
			b.WriteString("=on")
		} else {
			b.WriteString("=off")
		}
	}
	println("[boardsim] status:"+b.String(), "toggles:", sim.BeeperToggles(), "resets:", sim.Resets())
}
