package flowtable

import "errors"

// ErrIndeterminatePort is returned when a leaf's ActionSet contains an
// action that does not assign field.Location: OpenFlow requires every
// forwarding action to name an explicit output port, so a policy that
// leaves the output location unresolved cannot be emitted as flow rules.
var ErrIndeterminatePort = errors.New("flowtable: action does not assign an output port")

// ErrUnsupportedAction is returned when a leaf's ActionSet assigns a
// field a single OpenFlow table cannot act on: field.Switch (a single
// table has no notion of routing to a different switch) or
// field.VSwitch/field.VPort.
var ErrUnsupportedAction = errors.New("flowtable: action assigns a field this table cannot express")
