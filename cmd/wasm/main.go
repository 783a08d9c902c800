//go:build js && wasm

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"syscall/js"

	"github.com/inamate/board/internal/autosave"
	"github.com/inamate/board/internal/document"
	"github.com/inamate/board/internal/engine"
	"github.com/inamate/board/internal/typeid"
)

var (
	bus       *engine.Bus
	store     *engine.Store
	selection *engine.SelectionSet
	surface   *engine.Surface
	eng       *engine.Engine
	saver     *autosave.Saver
	handles   = engine.NewRenderRegistry[int]()

	resolution = 1.0
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	opts := engine.DefaultOptions()
	if r := js.Global().Get("devicePixelRatio"); r.Type() == js.TypeNumber {
		opts.Resolution = r.Float()
	}
	resolution = opts.Resolution

	bus = engine.NewBus()
	store = engine.NewStore(bus, opts)
	selection = engine.NewSelectionSet(bus)

	// The surface must see pan/zoom before the engine refreshes for them.
	surface = engine.NewSurface(opts.MinZoom, opts.MaxZoom)
	surface.Subscribe(bus)

	var text engine.TextMeasurer
	if m, err := engine.NewFontMeasurer(); err != nil {
		slog.Error("load font", "error", err)
	} else {
		text = m
	}

	eng = engine.New(engine.Deps{
		Scene:     store,
		Selection: selection,
		Camera:    surface,
		Bus:       bus,
		Text:      text,
	}, opts)

	saver = autosave.New(store, autosave.SinkFunc(putBoard), nil)
	saver.Subscribe(bus)

	boardEngine := js.Global().Get("Object").New()

	// --- Commands (page → engine) ---
	boardEngine.Set("loadBoard", js.FuncOf(loadBoard))
	boardEngine.Set("loadSampleBoard", js.FuncOf(loadSampleBoard))
	boardEngine.Set("newBoard", js.FuncOf(newBoard))
	boardEngine.Set("setCamera", js.FuncOf(setCamera))
	boardEngine.Set("zoom", js.FuncOf(zoom))
	boardEngine.Set("pan", js.FuncOf(pan))
	boardEngine.Set("setSelection", js.FuncOf(setSelection))
	boardEngine.Set("pointerDown", js.FuncOf(pointerDown))
	boardEngine.Set("pointerMove", js.FuncOf(pointerMove))
	boardEngine.Set("pointerUp", js.FuncOf(pointerUp))
	boardEngine.Set("createObject", js.FuncOf(createObject))
	boardEngine.Set("updateObject", js.FuncOf(updateObject))
	boardEngine.Set("deleteObjects", js.FuncOf(deleteObjects))
	boardEngine.Set("bringToFront", js.FuncOf(bringToFront))
	boardEngine.Set("sendToBack", js.FuncOf(sendToBack))
	boardEngine.Set("bindRenderHandle", js.FuncOf(bindRenderHandle))
	boardEngine.Set("onMessage", js.FuncOf(onMessage))
	boardEngine.Set("flush", js.FuncOf(flush))

	// --- Queries (engine → page) ---
	boardEngine.Set("getOverlay", js.FuncOf(getOverlay))
	boardEngine.Set("getGuides", js.FuncOf(getGuides))
	boardEngine.Set("getHoverFrame", js.FuncOf(getHoverFrame))
	boardEngine.Set("getBoard", js.FuncOf(getBoard))
	boardEngine.Set("getSelection", js.FuncOf(getSelection))
	boardEngine.Set("getCamera", js.FuncOf(getCamera))
	boardEngine.Set("getObject", js.FuncOf(getObject))
	boardEngine.Set("getObjectMatrix", js.FuncOf(getObjectMatrix))
	boardEngine.Set("getViewMatrix", js.FuncOf(getViewMatrix))
	boardEngine.Set("getRenderHandle", js.FuncOf(getRenderHandle))
	boardEngine.Set("objectForHandle", js.FuncOf(objectForHandle))
	boardEngine.Set("isDirty", js.FuncOf(isDirty))

	js.Global().Set("boardEngine", boardEngine)
	js.Global().Set("boardWasmReady", js.ValueOf(true))

	select {}
}

func errorResult(err error) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

func okResult() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func toJSON(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return js.ValueOf("null")
	}
	return js.ValueOf(string(data))
}

func stringArgs(v js.Value) []string {
	if v.Type() != js.TypeObject {
		return nil
	}
	ids := make([]string, v.Length())
	for i := range ids {
		ids[i] = v.Index(i).String()
	}
	return ids
}

// pointerArgs reads (x, y, modifiers) in CSS pixels.
func pointerArgs(args []js.Value) (engine.Point, engine.Modifiers, bool) {
	if len(args) < 2 {
		return engine.Point{}, 0, false
	}
	var mods engine.Modifiers
	if len(args) > 2 && args[2].Type() == js.TypeNumber {
		mods = engine.Modifiers(args[2].Int())
	}
	return engine.Point{X: args[0].Float(), Y: args[1].Float()}, mods, true
}

// --- Command Handlers ---

func loadBoard(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult(fmt.Errorf("missing board JSON"))
	}
	b, err := document.Parse([]byte(args[0].String()))
	if err != nil {
		return errorResult(err)
	}
	if err := store.Load(b); err != nil {
		return errorResult(err)
	}
	selection.Clear()
	saver.MarkClean()
	return okResult()
}

func loadSampleBoard(this js.Value, args []js.Value) interface{} {
	boardID := typeid.NewBoardID()
	if len(args) > 0 && args[0].Type() == js.TypeString {
		boardID = args[0].String()
	}
	if err := store.Load(document.NewSampleBoard(boardID)); err != nil {
		return errorResult(err)
	}
	selection.Clear()
	saver.MarkClean()
	return okResult()
}

// newBoard(name) starts an empty board under a fresh id.
func newBoard(this js.Value, args []js.Value) interface{} {
	name := "Untitled"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		name = args[0].String()
	}
	b := document.NewEmptyBoard(typeid.NewBoardID(), name)
	if err := store.Load(b); err != nil {
		return errorResult(err)
	}
	selection.Clear()
	saver.MarkClean()
	return js.ValueOf(b.ID)
}

func setCamera(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	surface.SetCamera(engine.Camera{
		Scale:     args[0].Float(),
		Translate: engine.Point{X: args[1].Float(), Y: args[2].Float()},
	})
	eng.Refresh()
	return nil
}

// zoom(percent, anchorX, anchorY) with the anchor in screen pixels.
func zoom(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	msg := engine.Message{Kind: engine.MsgZoomChanged, ZoomPercent: args[0].Float()}
	if len(args) >= 3 {
		msg.Anchor = &engine.Point{X: args[1].Float(), Y: args[2].Float()}
	}
	bus.Publish(msg)
	return nil
}

func pan(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	bus.Publish(engine.Message{Kind: engine.MsgPan, Delta: &engine.Point{X: args[0].Float(), Y: args[1].Float()}})
	return nil
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		selection.Clear()
		return nil
	}
	selection.Select(stringArgs(args[0]))
	return nil
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	p, mods, ok := pointerArgs(args)
	if !ok {
		return toJSON(engine.HitResult{})
	}
	return toJSON(eng.PointerDown(p, mods))
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if p, mods, ok := pointerArgs(args); ok {
		eng.PointerMove(p, mods)
	}
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if p, mods, ok := pointerArgs(args); ok {
		eng.PointerUp(p, mods)
	}
	return nil
}

func createObject(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult(fmt.Errorf("missing object JSON"))
	}
	var o document.SceneObject
	if err := json.Unmarshal([]byte(args[0].String()), &o); err != nil {
		return errorResult(err)
	}
	created, err := store.Create(&o)
	if err != nil {
		return errorResult(err)
	}
	return toJSON(created)
}

// updateObject(id, geometryJSON) writes geometry from a property panel.
func updateObject(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult(fmt.Errorf("missing object id or geometry JSON"))
	}
	var g document.Geometry
	if err := json.Unmarshal([]byte(args[1].String()), &g); err != nil {
		return errorResult(err)
	}
	if err := store.Update(args[0].String(), g); err != nil {
		return errorResult(err)
	}
	return okResult()
}

func deleteObjects(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ids := stringArgs(args[0])
	if err := store.Delete(ids...); err != nil {
		return errorResult(err)
	}
	for _, id := range ids {
		handles.Unbind(id)
	}
	return okResult()
}

func bringToFront(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	if err := store.BringToFront(stringArgs(args[0])...); err != nil {
		return errorResult(err)
	}
	return okResult()
}

func sendToBack(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	if err := store.SendToBack(stringArgs(args[0])...); err != nil {
		return errorResult(err)
	}
	return okResult()
}

func bindRenderHandle(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	handles.Bind(args[0].String(), args[1].Int())
	return nil
}

// onMessage registers a callback receiving every bus message as JSON.
func onMessage(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		return nil
	}
	cb := args[0]
	bus.Subscribe(func(msg engine.Message) {
		data, err := json.Marshal(msg)
		if err != nil {
			slog.Error("marshal message", "kind", msg.Kind, "error", err)
			return
		}
		cb.Invoke(string(data))
	})
	return nil
}

// flush saves the board in the background; HTTP must not block the
// callback goroutine.
func flush(this js.Value, args []js.Value) interface{} {
	go func() {
		if err := saver.Flush(context.Background()); err != nil {
			slog.Error("flush", "error", err)
		}
	}()
	return nil
}

func putBoard(ctx context.Context, b *document.Board) (int, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, "/boards/"+b.ID, bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("put board: %s", resp.Status)
	}
	var out struct {
		Version int `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.Version, nil
}

// --- Query Handlers ---

func getOverlay(this js.Value, args []js.Value) interface{} {
	return toJSON(eng.Overlay())
}

func getGuides(this js.Value, args []js.Value) interface{} {
	return toJSON(eng.Guides())
}

func getHoverFrame(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.HoverFrame())
}

func getBoard(this js.Value, args []js.Value) interface{} {
	return toJSON(store.Snapshot())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return toJSON(selection.Selected())
}

func getCamera(this js.Value, args []js.Value) interface{} {
	return toJSON(surface.Camera())
}

func getObject(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.Null()
	}
	o, ok := store.Object(args[0].String())
	if !ok {
		return js.Null()
	}
	return toJSON(o)
}

// getObjectMatrix returns [a, b, c, d, e, f] mapping the object's local
// coordinates to world space.
func getObjectMatrix(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.Null()
	}
	o, ok := store.Object(args[0].String())
	if !ok {
		return js.Null()
	}
	return toJSON(engine.ObjectMatrix(o).ToSlice())
}

func getViewMatrix(this js.Value, args []js.Value) interface{} {
	vp := engine.Viewport{Camera: surface.Camera(), Resolution: resolution}
	return toJSON(vp.WorldToScreenMatrix().ToSlice())
}

func getRenderHandle(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.Null()
	}
	h, ok := handles.Handle(args[0].String())
	if !ok {
		return js.Null()
	}
	return js.ValueOf(h)
}

func objectForHandle(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.Null()
	}
	id, ok := handles.ObjectID(args[0].Int())
	if !ok {
		return js.Null()
	}
	return js.ValueOf(id)
}

func isDirty(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(saver.Dirty())
}
