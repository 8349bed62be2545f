package interp

import "errors"

// ErrOnVisit wraps whatever error an Options.OnVisit hook returns, the
// same "user-supplied hook error" the teacher's bfs package propagates
// from OnVisit.
var ErrOnVisit = errors.New("interp: OnVisit hook error")
