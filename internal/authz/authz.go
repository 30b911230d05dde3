// Package authz decides who may perform which action on which resource.
//
// Every action maps to a fixed list of predicates. A request is allowed
// when any predicate of its action holds for the principal and resource.
package authz

import (
	"go-gin-event-ticketing/internal/model"
	apperrors "go-gin-event-ticketing/pkg/app_errors"
)

// Action names one guarded operation.
type Action string

const (
	AccountCreate         Action = "account.create"
	AccountList           Action = "account.list"
	AccountRead           Action = "account.read"
	AccountUpdate         Action = "account.update"
	AccountDelete         Action = "account.delete"
	AccountAssignRole     Action = "account.assign_role"
	AccountChangePassword Action = "account.change_password"

	EventList            Action = "event.list"
	EventCreate          Action = "event.create"
	EventRead            Action = "event.read"
	EventUpdate          Action = "event.update"
	EventDelete          Action = "event.delete"
	EventManageInventory Action = "event.manage_inventory"

	TicketTypeList   Action = "ticket_type.list"
	TicketTypeCreate Action = "ticket_type.create"
	TicketTypeRead   Action = "ticket_type.read"
	TicketTypeUpdate Action = "ticket_type.update"
	TicketTypeDelete Action = "ticket_type.delete"

	TicketList     Action = "ticket.list"
	TicketPurchase Action = "ticket.purchase"
	TicketRead     Action = "ticket.read"
	TicketUpdate   Action = "ticket.update"
	TicketDelete   Action = "ticket.delete"
	TicketCheckIn  Action = "ticket.check_in"

	WishlistList   Action = "wishlist.list"
	WishlistCreate Action = "wishlist.create"
	WishlistDelete Action = "wishlist.delete"

	ReminderRun Action = "reminder.run"
)

// Principal is the authenticated caller. A nil *Principal is anonymous.
type Principal struct {
	AccountID int
	Username  string
	Role      model.Role
}

// Resource carries the ownership facts of the target. Zero fields mean
// "not applicable".
type Resource struct {
	// AccountID is the target account for account actions.
	AccountID int
	// OwnerID is the account owning the target row (ticket customer, wishlist creator).
	OwnerID int
	// EventOwnerID is the creator of the event the target belongs to.
	EventOwnerID int
}

// Reason explains a decision.
type Reason int

const (
	ReasonAllowed Reason = iota
	// ReasonUnauthenticated means the action needs a caller and there is none.
	ReasonUnauthenticated
	// ReasonRoleNotPermitted means the caller's role is not allowed.
	ReasonRoleNotPermitted
	// ReasonNotOwner means the action is limited to owners and the caller is not one.
	ReasonNotOwner
	// ReasonUnknownAction means the action has no rule. Unknown actions are denied.
	ReasonUnknownAction
)

func (r Reason) String() string {
	switch r {
	case ReasonAllowed:
		return "allowed"
	case ReasonUnauthenticated:
		return "unauthenticated"
	case ReasonRoleNotPermitted:
		return "role not permitted"
	case ReasonNotOwner:
		return "not owner"
	case ReasonUnknownAction:
		return "unknown action"
	default:
		return "unknown"
	}
}

type Decision struct {
	Allowed bool
	Reason  Reason
}

// Err maps a denial to the sentinel the HTTP layer understands. Nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if d.Reason == ReasonUnauthenticated {
		return apperrors.ErrUnauthenticated
	}
	return apperrors.ErrForbidden
}

type predicate struct {
	// ownership predicates turn a denial into ReasonNotOwner
	ownership bool
	check     func(p *Principal, res Resource) bool
}

var (
	anyone = predicate{check: func(*Principal, Resource) bool { return true }}

	authenticated = predicate{check: func(p *Principal, _ Resource) bool { return p != nil }}

	isAdmin = predicate{check: func(p *Principal, _ Resource) bool {
		return p != nil && p.Role == model.RoleAdmin
	}}

	isOrganizer = predicate{check: func(p *Principal, _ Resource) bool {
		return p != nil && p.Role == model.RoleOrganizer
	}}

	isSameUser = predicate{ownership: true, check: func(p *Principal, res Resource) bool {
		return p != nil && res.AccountID != 0 && p.AccountID == res.AccountID
	}}

	isResourceOwner = predicate{ownership: true, check: func(p *Principal, res Resource) bool {
		return p != nil && res.OwnerID != 0 && p.AccountID == res.OwnerID
	}}

	isEventOwner = predicate{ownership: true, check: func(p *Principal, res Resource) bool {
		return p != nil && res.EventOwnerID != 0 && p.AccountID == res.EventOwnerID
	}}

	isOrganizerEventOwner = predicate{ownership: true, check: func(p *Principal, res Resource) bool {
		return isOrganizer.check(p, res) && isEventOwner.check(p, res)
	}}
)

var rules = map[Action][]predicate{
	AccountCreate:         {anyone},
	AccountList:           {isAdmin},
	AccountRead:           {isAdmin, isSameUser},
	AccountUpdate:         {isAdmin, isSameUser},
	AccountDelete:         {isAdmin, isSameUser},
	AccountAssignRole:     {isAdmin},
	AccountChangePassword: {authenticated},

	EventList:            {anyone},
	EventCreate:          {isAdmin, isOrganizer},
	EventRead:            {isAdmin, isEventOwner},
	EventUpdate:          {isAdmin, isEventOwner},
	EventDelete:          {isAdmin, isEventOwner},
	EventManageInventory: {isAdmin, isEventOwner},

	TicketTypeList:   {isAdmin, isOrganizer},
	TicketTypeCreate: {isAdmin, isOrganizer},
	TicketTypeRead:   {isAdmin},
	TicketTypeUpdate: {isAdmin},
	TicketTypeDelete: {isAdmin},

	TicketList:     {authenticated},
	TicketPurchase: {authenticated},
	TicketRead:     {isAdmin, isResourceOwner, isEventOwner},
	TicketUpdate:   {isAdmin},
	TicketDelete:   {isAdmin},
	TicketCheckIn:  {isAdmin, isOrganizerEventOwner},

	WishlistList:   {authenticated},
	WishlistCreate: {authenticated},
	WishlistDelete: {isAdmin, isResourceOwner},

	ReminderRun: {isAdmin},
}

// Authorize evaluates the rule for action.
func Authorize(p *Principal, action Action, res Resource) Decision {
	preds, ok := rules[action]
	if !ok {
		return Decision{Reason: ReasonUnknownAction}
	}

	ownership := false
	for _, pred := range preds {
		if pred.check(p, res) {
			return Decision{Allowed: true, Reason: ReasonAllowed}
		}
		ownership = ownership || pred.ownership
	}

	switch {
	case p == nil:
		return Decision{Reason: ReasonUnauthenticated}
	case ownership:
		return Decision{Reason: ReasonNotOwner}
	default:
		return Decision{Reason: ReasonRoleNotPermitted}
	}
}

// Can is Authorize reduced to an error.
func Can(p *Principal, action Action, res Resource) error {
	return Authorize(p, action, res).Err()
}
