// Package layout computes pop tip geometry: how large the bubble must be for
// its content, which way the pointer faces, where the bubble lands inside its
// container and the outline a painter fills. Everything here is pure and
// independent of any UI toolkit; text measurement is injected via Measurer.
package layout
