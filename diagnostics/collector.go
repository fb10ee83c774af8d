package diagnostics

import (
	"fmt"

	"gitlab.com/tozd/go/errors"

	"github.com/HicaroD/objbridge/lexer/token"
)

var ErrCompilerErrorFound = errors.Base("compiler error found")

// Diag is a single diagnostic tied to a source position.
type Diag struct {
	Kind    Kind
	Message string
	Pos     token.Pos
}

func New(kind Kind, pos token.Pos, format string, args ...any) *Diag {
	return &Diag{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func (diag *Diag) Error() string {
	if !diag.Pos.IsValid() {
		return diag.Message
	}
	return fmt.Sprintf("%s: %s", diag.Pos, diag.Message)
}

// Is makes every Diag match ErrCompilerErrorFound.
func (diag *Diag) Is(target error) bool {
	return target == ErrCompilerErrorFound
}

// KindOf returns the kind of the first Diag found in err's chain.
func KindOf(err error) (Kind, bool) {
	var diag *Diag
	if errors.As(err, &diag) {
		return diag.Kind, true
	}
	return 0, false
}

// Collector accumulates the diagnostics reported while scanning and parsing a
// single source file. It is not safe for concurrent use.
type Collector struct {
	Diags []*Diag
}

func NewCollector() *Collector {
	return &Collector{
		Diags: nil,
	}
}

func (collector *Collector) ReportAndSave(diag *Diag) {
	collector.Diags = append(collector.Diags, diag)
}

// Report saves diag and returns it as an error so callers can write
// `return nil, p.collector.Report(diag)`.
func (collector *Collector) Report(diag *Diag) error {
	collector.ReportAndSave(diag)
	return diag
}

func (collector *Collector) HasErrors() bool {
	return len(collector.Diags) > 0
}
