package porter

import (
	"context"
	"reflect"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for porter events.
var (
	SignalCopierCompiled = capitan.NewSignal("porter.copier.compiled", "Copier compiled for a shape pair")
	SignalCopyComplete   = capitan.NewSignal("porter.copy.complete", "Copy operation finished")
	SignalViewComplete   = capitan.NewSignal("porter.view.complete", "Serialization view finished")
	SignalTrimComplete   = capitan.NewSignal("porter.trim.complete", "String trim finished")
)

// Keys for typed event data.
var (
	KeySourceType = capitan.NewStringKey("source_type")
	KeyTargetType = capitan.NewStringKey("target_type")
	KeyTypeName   = capitan.NewStringKey("type_name")
	KeyMode       = capitan.NewStringKey("mode")
	KeyView       = capitan.NewStringKey("view")
	KeyCount      = capitan.NewIntKey("count")
	KeyDuration   = capitan.NewDurationKey("duration")
	KeyError      = capitan.NewErrorKey("error")
)

// Copy modes and view names carried by KeyMode and KeyView.
const (
	modeQuick = "quick"
	modeDeep  = "deep"
	modeMap   = "map"

	viewMap    = "map"
	viewMapAll = "map_all"
	viewQuery  = "query"
)

// emitCopierCompiled emits an event when a copier is added to the cache.
func emitCopierCompiled(ctx context.Context, source, target reflect.Type, properties int) {
	capitan.Emit(ctx, SignalCopierCompiled,
		KeySourceType.Field(typeLabel(source)),
		KeyTargetType.Field(typeLabel(target)),
		KeyCount.Field(properties),
	)
}

// emitCopyComplete emits an event when a copy or map operation finishes.
func emitCopyComplete(ctx context.Context, mode string, source, target reflect.Type, count int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyMode.Field(mode),
		KeySourceType.Field(typeLabel(source)),
		KeyTargetType.Field(typeLabel(target)),
		KeyCount.Field(count),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalCopyComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalCopyComplete, fields...)
	}
}

// emitViewComplete emits an event when a serialization view finishes.
func emitViewComplete(ctx context.Context, view string, typ reflect.Type, count int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyView.Field(view),
		KeyTypeName.Field(typeLabel(typ)),
		KeyCount.Field(count),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalViewComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalViewComplete, fields...)
	}
}

// emitTrimComplete emits an event when TrimStringFields finishes.
func emitTrimComplete(ctx context.Context, typ reflect.Type, trimmed int, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeLabel(typ)),
		KeyCount.Field(trimmed),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalTrimComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalTrimComplete, fields...)
	}
}
