//go:build js && wasm

// Command treeshaker-wasm is the WebAssembly build of the tree-shaker.
// It exposes shaking to JavaScript via syscall/js.
package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/HugoDaniel/treeshaker/pkg/api"
)

var version = "0.1.0"

// jsOptions mirrors the JavaScript options object.
type jsOptions struct {
	TreeShaking             *bool `json:"treeShaking"`
	PureGlobals             *bool `json:"pureGlobals"`
	PropertyReadSideEffects *bool `json:"propertyReadSideEffects"`
	KeepComments            *bool `json:"keepComments"`
	KeepLines               []int `json:"keepLines"`
	SourceMap               *bool `json:"sourceMap"`
}

func main() {
	// Export functions to JavaScript
	js.Global().Set("__treeshaker", js.ValueOf(map[string]interface{}{
		"shake":   js.FuncOf(shakeJS),
		"version": version,
	}))

	// Keep the Go runtime alive
	select {}
}

// shakeJS is the JavaScript-callable shake function.
// Signature: __treeshaker.shake(source: string, options?: object) => object
func shakeJS(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("shake requires at least 1 argument (source)")
	}

	source := args[0].String()
	opts := api.DefaultOptions()

	if len(args) > 1 && !args[1].IsUndefined() && !args[1].IsNull() {
		var jsOpts jsOptions
		jsonStr := js.Global().Get("JSON").Call("stringify", args[1]).String()
		if err := json.Unmarshal([]byte(jsonStr), &jsOpts); err != nil {
			return makeError("invalid options: " + err.Error())
		}
		applyOptions(&opts, jsOpts)
	}

	result := api.Shake(source, opts)

	// Hand the result over as a plain object using its JSON field names
	data, err := json.Marshal(result)
	if err != nil {
		return makeError(err.Error())
	}
	return js.Global().Get("JSON").Call("parse", string(data))
}

func applyOptions(opts *api.Options, jsOpts jsOptions) {
	if jsOpts.TreeShaking != nil {
		opts.TreeShaking = *jsOpts.TreeShaking
	}
	if jsOpts.PureGlobals != nil {
		opts.PureGlobals = *jsOpts.PureGlobals
	}
	if jsOpts.PropertyReadSideEffects != nil {
		opts.PropertyReadSideEffects = *jsOpts.PropertyReadSideEffects
	}
	if jsOpts.KeepComments != nil {
		opts.KeepComments = *jsOpts.KeepComments
	}
	if jsOpts.KeepLines != nil {
		opts.KeepLines = jsOpts.KeepLines
	}
	if jsOpts.SourceMap != nil {
		opts.SourceMap = *jsOpts.SourceMap
	}
}

// makeError creates a result object with an error.
func makeError(msg string) interface{} {
	return map[string]interface{}{
		"code":       "",
		"errors":     []interface{}{msg},
		"statements": []interface{}{},
		"removed":    []interface{}{},
	}
}
