// Package script drives a machine from a Lua file during headless runs.
//
// A script may define
//
//	function on_frame(n) ... end
//
// which is called before every frame with the frame number (starting at 0).
// The following globals are available:
//
//	press(k)    hold keypad key k (0-15)
//	release(k)  release keypad key k
//	quit()      stop the run after the current frame
//	reg(x)      value of register Vx
//	pc()        program counter
//	index()     I register
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/chip8"
)

// Host is the part of emu.Machine a script can touch.
type Host interface {
	SetKey(k int, down bool)
	Core() *chip8.Machine
}

type Script struct {
	L       *lua.LState
	host    Host
	onFrame lua.LValue
	quit    bool
}

// Load runs the file at path and returns the resulting script.
func Load(path string, h Host) (*Script, error) {
	s := newScript(h)
	if err := s.L.DoFile(path); err != nil {
		s.Close()
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	s.bind()
	return s, nil
}

// LoadString is Load for inline source.
func LoadString(src string, h Host) (*Script, error) {
	s := newScript(h)
	if err := s.L.DoString(src); err != nil {
		s.Close()
		return nil, fmt.Errorf("script: %w", err)
	}
	s.bind()
	return s, nil
}

func newScript(h Host) *Script {
	s := &Script{L: lua.NewState(), host: h}
	L := s.L
	L.SetGlobal("press", L.NewFunction(s.press))
	L.SetGlobal("release", L.NewFunction(s.release))
	L.SetGlobal("quit", L.NewFunction(func(L *lua.LState) int {
		s.quit = true
		return 0
	}))
	L.SetGlobal("reg", L.NewFunction(func(L *lua.LState) int {
		x := L.CheckInt(1)
		if x < 0 || x >= chip8.NumRegisters {
			L.ArgError(1, "register out of range")
			return 0
		}
		L.Push(lua.LNumber(s.host.Core().V[x]))
		return 1
	}))
	L.SetGlobal("pc", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(s.host.Core().PC))
		return 1
	}))
	L.SetGlobal("index", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(s.host.Core().I))
		return 1
	}))
	return s
}

func (s *Script) bind() {
	if fn := s.L.GetGlobal("on_frame"); fn.Type() == lua.LTFunction {
		s.onFrame = fn
	}
}

func (s *Script) key(L *lua.LState) int {
	k := L.CheckInt(1)
	if k < 0 || k >= chip8.NumKeys {
		L.ArgError(1, "key out of range")
	}
	return k
}

func (s *Script) press(L *lua.LState) int {
	s.host.SetKey(s.key(L), true)
	return 0
}

func (s *Script) release(L *lua.LState) int {
	s.host.SetKey(s.key(L), false)
	return 0
}

// Frame calls on_frame(n) if the script defines it.
func (s *Script) Frame(n uint64) error {
	if s.onFrame == nil {
		return nil
	}
	err := s.L.CallByParam(lua.P{Fn: s.onFrame, NRet: 0, Protect: true}, lua.LNumber(n))
	if err != nil {
		return fmt.Errorf("script: on_frame(%d): %w", n, err)
	}
	return nil
}

// Quit reports whether the script asked to stop.
func (s *Script) Quit() bool { return s.quit }

func (s *Script) Close() { s.L.Close() }
