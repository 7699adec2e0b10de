// Package display presents pop tips. A PopTip sizes and places itself with
// the layout package, then drives a host UI through the Host interface:
// attaching the bubble and tap-catcher overlays, running transitions and
// scheduling the auto-dismiss timer. All PopTip methods must be called from
// the host's UI goroutine; timer and animation callbacks are expected to be
// delivered there too.
package display
