package ast

// Attached threads a value of type V through nested AddComposite calls of
// the wrapped Build. Builders handed to composite callbacks are themselves
// Attached, so the value is visible at every depth.
//
// Attach and Detach nest: detaching returns the Build that was wrapped and
// the value, and an attachment of one type cannot be detached as another.
type Attached[V any] struct {
	Build
	value V
}

func Attach[V any](b Build, v V) *Attached[V] {
	return &Attached[V]{Build: b, value: v}
}

func (a *Attached[V]) Value() V { return a.value }

func (a *Attached[V]) Detach() (Build, V) { return a.Build, a.value }

func (a *Attached[V]) AddComposite(v Value, f func(Build) error) error {
	return a.Build.AddComposite(v, func(c Build) error {
		return f(&Attached[V]{Build: c, value: a.value})
	})
}

// Unwrap returns the wrapped Build.
func (a *Attached[V]) Unwrap() Build { return a.Build }

// AttachmentOf finds the innermost attachment of type V on b, following
// Unwrap through decorating builders.
func AttachmentOf[V any](b Build) (V, bool) {
	for b != nil {
		if a, ok := b.(*Attached[V]); ok {
			return a.value, true
		}
		u, ok := b.(interface{ Unwrap() Build })
		if !ok {
			break
		}
		b = u.Unwrap()
	}
	var zero V
	return zero, false
}
