package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lmittmann/tint"
	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"

	"github.com/HicaroD/objbridge/diagnostics"
)

// SetupSlogSimpleToWriter installs a tint handler wrapped by slogctx as the
// default logger and returns a context carrying it.
func SetupSlogSimpleToWriter(ctx context.Context, w io.Writer, color bool) context.Context {
	return SetupSlogToWriterWithLevel(ctx, w, color, slog.LevelDebug)
}

func SetupSlogToWriterWithLevel(ctx context.Context, w io.Writer, color bool, level slog.Leveler) context.Context {
	tintHandler := tint.NewHandler(w, &tint.Options{
		Level:       level,
		TimeFormat:  "2006-01-02 15:04 05.0000",
		AddSource:   true,
		ReplaceAttr: formatErrors,
		NoColor:     !color,
	})

	ctxHandler := slogctx.NewHandler(tintHandler, &slogctx.HandlerOptions{})

	mylogger := slog.New(ctxHandler)
	slog.SetDefault(mylogger)

	return slogctx.NewCtx(ctx, mylogger)
}

// formatErrors expands diagnostics into their kind and position, and stack
// carrying errors into the frame that created them.
func formatErrors(groups []string, a slog.Attr) slog.Attr {
	if a.Key != "error" {
		return a
	}
	err, ok := a.Value.Any().(error)
	if !ok {
		return a
	}

	var diag *diagnostics.Diag
	if errors.As(err, &diag) {
		a.Value = slog.GroupValue(
			slog.String("message", diag.Message),
			slog.String("kind", diag.Kind.String()),
			slog.String("pos", diag.Pos.String()),
		)
		return a
	}

	if terr, ok := err.(errors.E); ok {
		frames := runtime.CallersFrames(terr.StackTrace())
		firstFramed, _ := frames.Next()
		pkg := packageName(firstFramed)
		uri := fmt.Sprintf("%s:%d", firstFramed.File, firstFramed.Line)
		a.Value = slog.GroupValue(
			slog.Any("error", err),
			slog.String("func", strings.TrimPrefix(firstFramed.Function, pkg+".")),
			slog.String("package", pkg),
			slog.String("file", filepath.Base(filepath.Dir(uri))+"/"+filepath.Base(uri)),
		)
	}
	return a
}

func packageName(frame runtime.Frame) string {
	lastSlash := strings.LastIndex(frame.Function, "/")
	if lastSlash == -1 {
		return ""
	}
	almost := frame.Function[:lastSlash]
	remaining := frame.Function[lastSlash+1:]
	firstDot := strings.Index(remaining, ".")
	if firstDot == -1 {
		return ""
	}
	return almost + "/" + remaining[:firstDot]
}
