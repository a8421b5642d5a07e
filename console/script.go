package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/dynamicmusic/cue"
)

// RunScript compiles and runs a tengo console script. The script sees a
// `cue` map with playdynamic, stopdynamic, skipdynamic, setmood, exec, mood,
// track and tracks. Failing calls return false and are logged.
func (c *Console) RunScript(ctx context.Context, name string, src []byte) error {
	script, err := c.newScript(name, src)
	if err != nil {
		return err
	}
	if _, err := script.RunContext(ctx); err != nil {
		return fmt.Errorf("console: script %s: %w", name, err)
	}
	return nil
}

// CompileScript reports syntax and symbol errors without running the script.
func (c *Console) CompileScript(name string, src []byte) error {
	script, err := c.newScript(name, src)
	if err != nil {
		return err
	}
	if _, err := script.Compile(); err != nil {
		return fmt.Errorf("console: script %s: %w", name, err)
	}
	return nil
}

func (c *Console) newScript(name string, src []byte) (*tengo.Script, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("cue", c.scriptModule(name)); err != nil {
		return nil, fmt.Errorf("console: script %s: %w", name, err)
	}
	return script, nil
}

func (c *Console) scriptModule(script string) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	result := func(err error) (tengo.Object, error) {
		if err != nil {
			c.logger.Printf("console: %s: %v", script, err)
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}

	values["exec"] = &tengo.UserFunction{Name: "exec", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		return result(c.Exec(objectAsString(args[0])))
	}}

	values["playdynamic"] = &tengo.UserFunction{Name: "playdynamic", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		return result(c.playDynamic([]string{name}))
	}}

	values["stopdynamic"] = &tengo.UserFunction{Name: "stopdynamic", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return result(c.stopDynamic(nil))
	}}

	values["skipdynamic"] = &tengo.UserFunction{Name: "skipdynamic", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return result(c.skipDynamic(nil))
	}}

	values["setmood"] = &tengo.UserFunction{Name: "setmood", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		n, ok := tengo.ToInt(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		return result(c.SetMood(cue.Mood(n)))
	}}

	values["mood"] = &tengo.UserFunction{Name: "mood", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(c.cues.Mood())}, nil
	}}

	values["track"] = &tengo.UserFunction{Name: "track", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if t := c.cues.CurrentTrack(); t != nil {
			return &tengo.String{Value: t.Name()}, nil
		}
		return &tengo.String{Value: ""}, nil
	}}

	values["tracks"] = &tengo.UserFunction{Name: "tracks", Value: func(args ...tengo.Object) (tengo.Object, error) {
		names := c.cues.TrackNames()
		out := make([]tengo.Object, 0, len(names))
		for _, n := range names {
			out = append(out, &tengo.String{Value: n})
		}
		return &tengo.Array{Value: out}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
