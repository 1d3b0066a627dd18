package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/combatkata/arena/internal/combat"
)

// Engine wraps a single gopher-lua VM holding combat formula overrides.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads scripts from dir/core and then
// dir/combat. Missing directories are skipped.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	for _, sub := range []string{"core", "combat"} {
		if err := e.loadDir(filepath.Join(dir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HasModifier reports whether a calc_damage_modifier function is loaded.
func (e *Engine) HasModifier() bool {
	return e.vm.GetGlobal("calc_damage_modifier") != lua.LNil
}

// DamageModifier calls the Lua calc_damage_modifier function:
//
//	calc_damage_modifier({defender={level=N}, attacker={level=M}}) -> number|string|nil
//
// A nil result, a missing function or a script error returns false so the
// caller falls back to the built-in table.
func (e *Engine) DamageModifier(defenderLevel, attackerLevel int) (decimal.Decimal, bool) {
	fn := e.vm.GetGlobal("calc_damage_modifier")
	if fn == lua.LNil {
		return decimal.Decimal{}, false
	}

	t := e.vm.NewTable()
	def := e.vm.NewTable()
	def.RawSetString("level", lua.LNumber(defenderLevel))
	t.RawSetString("defender", def)
	atk := e.vm.NewTable()
	atk.RawSetString("level", lua.LNumber(attackerLevel))
	t.RawSetString("attacker", atk)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_damage_modifier error", zap.Error(err))
		return decimal.Decimal{}, false
	}

	ret := e.vm.Get(-1)
	e.vm.Pop(1)

	switch ret.Type() {
	case lua.LTNil:
		return decimal.Decimal{}, false
	case lua.LTNumber, lua.LTString:
		// go through the string form so "0.1" stays exactly 0.1
		m, err := decimal.NewFromString(ret.String())
		if err != nil {
			e.log.Error("lua calc_damage_modifier returned bad modifier",
				zap.String("value", ret.String()), zap.Error(err))
			return decimal.Decimal{}, false
		}
		if m.IsNegative() {
			e.log.Error("lua calc_damage_modifier returned negative modifier", zap.Stringer("value", m))
			return decimal.Decimal{}, false
		}
		return m, true
	}
	e.log.Error("lua calc_damage_modifier returned non-number", zap.String("type", ret.Type().String()))
	return decimal.Decimal{}, false
}

// ModifierFunc adapts the engine for combat.Rules.
func (e *Engine) ModifierFunc() combat.ModifierFunc {
	return e.DamageModifier
}

func (e *Engine) Close() {
	e.vm.Close()
}
