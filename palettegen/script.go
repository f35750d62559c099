package palettegen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/gogpu/piart"
)

// ErrNoColorFunction is returned when a palette script does not define
// a global function named color.
var ErrNoColorFunction = errors.New("palettegen: script does not define color(digit, theme)")

// ErrEmptyScript is returned by NewScript for blank source.
var ErrEmptyScript = errors.New("palettegen: empty script")

// Script computes a palette with a Lua function:
//
//	function color(digit, theme)
//	  return string.format("#%02x%02x%02x", digit * 25, 128, 255 - digit * 25)
//	end
//
// color is called once per digit 0-9 and must return a hex color string.
// Only the base, string, math and table libraries are available.
type Script struct {
	src   string
	proto *lua.FunctionProto
}

// NewScript compiles src. Syntax errors are reported here rather than on
// the first request.
func NewScript(src string) (*Script, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyScript
	}
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	fn, err := L.LoadString(src)
	if err != nil {
		return nil, fmt.Errorf("palettegen: compile script: %w", err)
	}
	return &Script{src: src, proto: fn.Proto}, nil
}

// Generate implements Generator.
func (s *Script) Generate(ctx context.Context, req Request) (piart.Palette, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	L.SetContext(ctx)

	L.Push(L.NewFunctionFromProto(s.proto))
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return piart.Palette{}, newError(ProviderScript, req, KindResponse, err)
	}

	fn, ok := L.GetGlobal("color").(*lua.LFunction)
	if !ok {
		return piart.Palette{}, newError(ProviderScript, req, KindResponse, ErrNoColorFunction)
	}

	var p piart.Palette
	for d := range p {
		if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, lua.LNumber(d), lua.LString(req.Theme)); err != nil {
			return piart.Palette{}, newError(ProviderScript, req, KindResponse, err)
		}
		ret := L.Get(-1)
		L.Pop(1)

		str, ok := ret.(lua.LString)
		if !ok {
			return piart.Palette{}, newError(ProviderScript, req, KindResponse,
				fmt.Errorf("%w: color(%d) returned %s", ErrMalformedResponse, d, ret.Type()))
		}
		c, err := piart.ParsePaletteColor(string(str))
		if err != nil {
			return piart.Palette{}, newError(ProviderScript, req, KindResponse,
				fmt.Errorf("color(%d): %w", d, err))
		}
		p[d] = c
	}
	return p, nil
}

func openSafeLibs(L *lua.LState) {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
		{lua.TabLibName, lua.OpenTable},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}
