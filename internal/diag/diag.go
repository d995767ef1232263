// Package diag implements Pecco's structured diagnostics: the
// accumulate-don't-throw error model shared by every compiler pass
// (spec.md 7), and the two-line caret/wavy-underline source rendering
// from spec.md 6, grounded on the teacher's internal/errors package
// (CompilerError.Format).
package diag

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/Pecco-314/pecco-lang/internal/token"
)

// Stage tags which pass produced a diagnostic.
type Stage string

const (
	Lexer    Stage = "lexer"
	Parser   Stage = "parser"
	Symbols  Stage = "symbols"
	Resolver Stage = "resolver"
	Types    Stage = "types"
	Codegen  Stage = "codegen"
	Internal Stage = "internal"
)

// Diagnostic is a single structured error record (spec.md 6).
type Diagnostic struct {
	Stage       Stage           `json:"stage"`
	Path        string          `json:"path"`
	Pos         token.Position  `json:"pos"`
	Message     string          `json:"message"`
	ErrorOffset int             `json:"errorOffset,omitempty"`
}

// New builds a Diagnostic tied to a source position.
func New(stage Stage, path string, pos token.Position, message string) Diagnostic {
	return Diagnostic{Stage: stage, Path: path, Pos: pos, Message: message}
}

// Fatal builds an internal-assertion diagnostic with no source
// location, per spec.md 7 ("Internal assertion failures ... surface as
// a distinct fatal-error kind with no source location").
func Fatal(message string) Diagnostic {
	return Diagnostic{Stage: Internal, Message: message}
}

// Header renders the single-line "stage error at PATH:LINE:COL:
// MESSAGE" header.
func (d Diagnostic) Header() string {
	if !d.Pos.IsValid() {
		return fmt.Sprintf("%s error: %s", d.Stage, d.Message)
	}
	return fmt.Sprintf("%s error at %s:%d:%d: %s", d.Stage, d.Path, d.Pos.Line, d.Pos.StartColumn, d.Message)
}

// Render produces the full two-line diagnostic: the header, followed
// by the offending source line with a caret (single-column errors) or
// a wavy underline (multi-column spans), the caret placed at
// ErrorOffset within the span when it is non-zero.
func (d Diagnostic) Render(src string) string {
	var sb strings.Builder
	sb.WriteString(d.Header())
	if !d.Pos.IsValid() {
		return sb.String()
	}
	sb.WriteString("\n")

	line := sourceLine(src, d.Pos.Line)
	if line == "" {
		return sb.String()
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	width := d.Pos.EndColumn - d.Pos.StartColumn + 1
	if width < 1 {
		width = 1
	}
	sb.WriteString(strings.Repeat(" ", d.Pos.StartColumn-1))
	if width == 1 {
		sb.WriteString("^")
	} else {
		underline := []byte(strings.Repeat("~", width))
		if d.ErrorOffset > 0 && d.ErrorOffset < width {
			underline[d.ErrorOffset] = '^'
		}
		sb.Write(underline)
	}
	return sb.String()
}

func sourceLine(src string, line int) string {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// List is an ordered collection of diagnostics accumulated by a pass.
// Passes never throw; they append to a List and the pipeline decides
// whether to halt based on HasErrors (spec.md 7).
type List struct {
	items []Diagnostic
}

// Add appends a diagnostic.
func (l *List) Add(d Diagnostic) { l.items = append(l.items, d) }

// Addf is a convenience wrapper building a Diagnostic inline.
func (l *List) Addf(stage Stage, path string, pos token.Position, format string, args ...any) {
	l.Add(New(stage, path, pos, fmt.Sprintf(format, args...)))
}

// HasErrors reports whether any diagnostic has been recorded.
func (l *List) HasErrors() bool { return len(l.items) > 0 }

// Items returns the accumulated diagnostics.
func (l *List) Items() []Diagnostic { return l.items }

// Extend appends another list's diagnostics.
func (l *List) Extend(other *List) {
	if other == nil {
		return
	}
	l.items = append(l.items, other.items...)
}

// JSON serializes the list as a JSON array of diagnostic records.
// encoding/json is the right tool here because the shape is a fixed,
// concrete struct; gjson/sjson below are reserved for *querying* and
// *patching* an already-serialized document, a distinct concern.
func (l *List) JSON() (string, error) {
	b, err := json.Marshal(l.items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Query runs a gjson path expression against a JSON diagnostics
// document (as produced by JSON), e.g. "#(stage==\"types\")#.message",
// letting the `--filter-diagnostics` CLI flag narrow a large dump
// without recompiling.
func Query(jsonDoc, path string) string {
	return gjson.Get(jsonDoc, path).String()
}

// Suppress flips the "suppressed" field of the diagnostic at index i
// within a JSON diagnostics document, returning the patched document.
// Used by editor integrations that want to mute one diagnostic without
// re-marshaling the whole structure by hand.
func Suppress(jsonDoc string, i int) (string, error) {
	return sjson.Set(jsonDoc, fmt.Sprintf("%d.suppressed", i), true)
}
