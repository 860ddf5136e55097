// Copyright 2026 The Waypost Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package waypost

// DiagnosticEvent represents a router diagnostic or anomaly.
//
// Diagnostic events are optional - the router functions correctly whether
// they are collected or not. They provide visibility into route table edge
// cases for observability systems.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagRouteShadowed reports a literal route that can never win a lookup
	// because an earlier-registered route matches the same path. Emitted
	// once per shadowed route when the router freezes.
	DiagRouteShadowed DiagnosticKind = "route_shadowed"

	// DiagHighParamCount reports a route binding an unusually high number
	// of parameters, which often signals an over-general pattern.
	DiagHighParamCount DiagnosticKind = "route_param_count_high"
)

// DiagnosticHandler receives diagnostic events from the router.
// Implementations may log, emit metrics, trace events, or ignore them.
//
// This interface is optional - if not provided, diagnostics are silently
// dropped.
//
// Example with logging:
//
//	import "log/slog"
//
//	handler := waypost.DiagnosticHandlerFunc(func(e waypost.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := waypost.MustNew(waypost.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}

// emitDiagnostic delivers an event to the configured handler, if any.
func (r *Router) emitDiagnostic(kind DiagnosticKind, message string, fields map[string]any) {
	if r.diagnostics == nil {
		return
	}
	r.diagnostics.OnDiagnostic(DiagnosticEvent{
		Kind:    kind,
		Message: message,
		Fields:  fields,
	})
}
