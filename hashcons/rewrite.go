package hashcons

// rewrite.go implements generic helpers for the structural rewrite
// protocol. There is no code generator in this repo, so each declared node
// type hand-writes its own DefaultRewrite using these helpers, rather than
// a macro emitting it. The helpers cover
// the structural cases the protocol assigns to primitives, slices, and
// optional (pointer) fields; the node-handle case is always just "call the
// rewriter's hook for that type", which is specific to each schema and has
// no generic helper here.
//
// © 2025 hashcons authors. MIT License.

// RewriteSlice applies rewrite to each element of xs and returns a new
// slice. If every element rewrites to itself (by the caller's own identity
// check, not enforced here), callers may still want to special-case the
// all-unchanged return to preserve a pointer-identity fast path; Ref's own
// default rewrite does this via RewriteSliceOfRefs.
func RewriteSlice[T any](xs []T, rewrite func(T) T) []T {
	out := make([]T, len(xs))
	for i, x := range xs {
		out[i] = rewrite(x)
	}
	return out
}

// RewriteSliceOfRefs is RewriteSlice specialized for []Ref[D]: if every
// element rewrites to a pointer-equal Ref, the original slice is returned
// unchanged, preserving sharing whenever a field's rewrite returns a
// pointer-equal handle.
func RewriteSliceOfRefs[D any](xs []Ref[D], rewrite func(Ref[D]) Ref[D]) []Ref[D] {
	changed := false
	out := make([]Ref[D], len(xs))
	for i, x := range xs {
		out[i] = rewrite(x)
		if !out[i].PtrEq(x) {
			changed = true
		}
	}
	if !changed {
		return xs
	}
	return out
}

// RewriteOptionalRef is the pointer-field counterpart of
// RewriteSliceOfRefs: a nil ref pointer rewrites to itself; a present one
// rewrites its payload and preserves the pointer when unchanged.
func RewriteOptionalRef[D any](x *Ref[D], rewrite func(Ref[D]) Ref[D]) *Ref[D] {
	if x == nil {
		return nil
	}
	out := rewrite(*x)
	if out.PtrEq(*x) {
		return x
	}
	return &out
}
