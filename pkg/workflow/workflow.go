// Package workflow holds the approval/payment/delivery lifecycle shared by
// certificate requests and mass bookings.
package workflow

import "fmt"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type PaymentStatus string

const (
	PaymentNotRequired PaymentStatus = "notRequired"
	PaymentPending     PaymentStatus = "pending"
	PaymentPaid        PaymentStatus = "paid"
)

type Phase string

const (
	PhasePending         Phase = "Pending"
	PhaseRejected        Phase = "Rejected"
	PhaseAwaitingPayment Phase = "AwaitingPayment"
	PhasePaid            Phase = "Paid"
	PhaseDelivered       Phase = "Delivered"
)

type Event string

const (
	EventApprove        Event = "Approve"
	EventReject         Event = "Reject"
	EventStartPayment   Event = "StartPayment"
	EventConfirmPayment Event = "ConfirmPayment"
	EventDeliver        Event = "Deliver"
)

// State is the persisted view of a record's lifecycle.
type State struct {
	Status        Status
	PaymentStatus PaymentStatus
	Delivered     bool
}

// ErrorKind separates a stale or repeated action from an action that is not yet allowed.
type ErrorKind int

const (
	Conflict ErrorKind = iota + 1
	InvalidState
)

type TransitionError struct {
	Kind    ErrorKind
	Event   Event
	From    Phase
	Message string
}

func (e *TransitionError) Error() string {
	return e.Message
}

const (
	MsgOnlyPending        = "Only pending requests can be updated"
	MsgAlreadyPaid        = "Already paid"
	MsgPaymentNotAllowed  = "Payment not allowed yet"
	MsgPaymentNotComplete = "Payment not completed"
	MsgNotApproved        = "Certificate not approved yet"
)

// Phase collapses the stored fields into one lifecycle phase. Inconsistent
// combinations resolve to the earliest phase they could belong to.
func (s State) Phase() Phase {
	switch s.Status {
	case StatusRejected:
		return PhaseRejected
	case StatusApproved:
		switch s.PaymentStatus {
		case PaymentPaid:
			if s.Delivered {
				return PhaseDelivered
			}
			return PhasePaid
		default:
			return PhaseAwaitingPayment
		}
	default:
		return PhasePending
	}
}

type transition struct {
	to    Phase
	state func(State) State
}

var table = map[Phase]map[Event]transition{
	PhasePending: {
		EventApprove: {PhaseAwaitingPayment, func(State) State {
			return State{Status: StatusApproved, PaymentStatus: PaymentPending}
		}},
		EventReject: {PhaseRejected, func(State) State {
			return State{Status: StatusRejected, PaymentStatus: PaymentNotRequired}
		}},
	},
	PhaseAwaitingPayment: {
		EventStartPayment:   {PhaseAwaitingPayment, func(s State) State { return s }},
		EventConfirmPayment: {PhasePaid, func(s State) State { s.PaymentStatus = PaymentPaid; return s }},
	},
	PhasePaid: {
		EventDeliver: {PhaseDelivered, func(s State) State { s.Delivered = true; return s }},
	},
	PhaseDelivered: {
		// re-upload replaces the artifact
		EventDeliver: {PhaseDelivered, func(s State) State { return s }},
	},
}

// Next returns the state reached by applying ev to s, or a *TransitionError.
func Next(s State, ev Event) (State, error) {
	from := s.Phase()
	if t, ok := table[from][ev]; ok {
		return t.state(s), nil
	}
	return s, reject(from, ev)
}

// Can reports whether ev is allowed from s.
func Can(s State, ev Event) bool {
	_, ok := table[s.Phase()][ev]
	return ok
}

func reject(from Phase, ev Event) *TransitionError {
	e := &TransitionError{Event: ev, From: from}
	switch ev {
	case EventApprove, EventReject:
		e.Kind, e.Message = Conflict, MsgOnlyPending
	case EventStartPayment, EventConfirmPayment:
		if from == PhasePaid || from == PhaseDelivered {
			e.Kind, e.Message = Conflict, MsgAlreadyPaid
		} else {
			e.Kind, e.Message = InvalidState, MsgPaymentNotAllowed
		}
	case EventDeliver:
		e.Kind = InvalidState
		if from == PhaseAwaitingPayment {
			e.Message = MsgPaymentNotComplete
		} else {
			e.Message = MsgNotApproved
		}
	default:
		e.Kind, e.Message = InvalidState, fmt.Sprintf("event %s not allowed from %s", ev, from)
	}
	return e
}
