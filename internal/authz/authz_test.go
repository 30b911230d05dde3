package authz

import (
	"testing"

	"go-gin-event-ticketing/internal/model"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/stretchr/testify/assert"
)

var (
	admin     = &Principal{AccountID: 1, Role: model.RoleAdmin}
	organizer = &Principal{AccountID: 2, Role: model.RoleOrganizer}
	attendee  = &Principal{AccountID: 3, Role: model.RoleAttendee}
	other     = &Principal{AccountID: 4, Role: model.RoleOthers}
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name      string
		principal *Principal
		action    Action
		resource  Resource
		allowed   bool
		reason    Reason
	}{
		{"anonymous can list events", nil, EventList, Resource{}, true, ReasonAllowed},
		{"anonymous can register", nil, AccountCreate, Resource{}, true, ReasonAllowed},
		{"anonymous cannot purchase", nil, TicketPurchase, Resource{}, false, ReasonUnauthenticated},
		{"anonymous cannot create event", nil, EventCreate, Resource{}, false, ReasonUnauthenticated},

		{"admin lists accounts", admin, AccountList, Resource{}, true, ReasonAllowed},
		{"organizer cannot list accounts", organizer, AccountList, Resource{}, false, ReasonRoleNotPermitted},
		{"attendee reads self", attendee, AccountRead, Resource{AccountID: 3}, true, ReasonAllowed},
		{"attendee cannot read other account", attendee, AccountRead, Resource{AccountID: 4}, false, ReasonNotOwner},
		{"only admin assigns roles", organizer, AccountAssignRole, Resource{AccountID: 2}, false, ReasonRoleNotPermitted},

		{"organizer creates event", organizer, EventCreate, Resource{}, true, ReasonAllowed},
		{"attendee cannot create event", attendee, EventCreate, Resource{}, false, ReasonRoleNotPermitted},
		{"owner updates event", organizer, EventUpdate, Resource{EventOwnerID: 2}, true, ReasonAllowed},
		{"attendee cannot read event detail", attendee, EventRead, Resource{EventOwnerID: 2}, false, ReasonNotOwner},
		{"admin deletes any event", admin, EventDelete, Resource{EventOwnerID: 2}, true, ReasonAllowed},
		{"other organizer cannot manage inventory", &Principal{AccountID: 9, Role: model.RoleOrganizer}, EventManageInventory, Resource{EventOwnerID: 2}, false, ReasonNotOwner},

		{"organizer lists ticket types", organizer, TicketTypeList, Resource{}, true, ReasonAllowed},
		{"organizer cannot update ticket type", organizer, TicketTypeUpdate, Resource{}, false, ReasonRoleNotPermitted},
		{"attendee cannot create ticket type", attendee, TicketTypeCreate, Resource{}, false, ReasonRoleNotPermitted},

		{"customer reads own ticket", attendee, TicketRead, Resource{OwnerID: 3, EventOwnerID: 2}, true, ReasonAllowed},
		{"event owner reads ticket", organizer, TicketRead, Resource{OwnerID: 3, EventOwnerID: 2}, true, ReasonAllowed},
		{"stranger cannot read ticket", other, TicketRead, Resource{OwnerID: 3, EventOwnerID: 2}, false, ReasonNotOwner},
		{"organizer cannot delete ticket", organizer, TicketDelete, Resource{OwnerID: 3, EventOwnerID: 2}, false, ReasonRoleNotPermitted},
		{"organizer checks in own event ticket", organizer, TicketCheckIn, Resource{EventOwnerID: 2}, true, ReasonAllowed},
		{"event owner without organizer role cannot check in", attendee, TicketCheckIn, Resource{EventOwnerID: 3}, false, ReasonNotOwner},
		{"admin checks in any ticket", admin, TicketCheckIn, Resource{EventOwnerID: 2}, true, ReasonAllowed},

		{"owner deletes wishlist entry", other, WishlistDelete, Resource{OwnerID: 4}, true, ReasonAllowed},
		{"stranger cannot delete wishlist entry", attendee, WishlistDelete, Resource{OwnerID: 4}, false, ReasonNotOwner},

		{"admin runs reminders", admin, ReminderRun, Resource{}, true, ReasonAllowed},
		{"organizer cannot run reminders", organizer, ReminderRun, Resource{}, false, ReasonRoleNotPermitted},

		{"unknown action denied", admin, Action("event.explode"), Resource{}, false, ReasonUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Authorize(tt.principal, tt.action, tt.resource)
			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.Equal(t, tt.reason, decision.Reason, decision.Reason.String())
		})
	}
}

func TestZeroOwnerNeverMatches(t *testing.T) {
	// a principal with id 0 must not pass ownership checks on unset fields
	p := &Principal{AccountID: 0, Role: model.RoleAttendee}
	assert.False(t, Authorize(p, TicketRead, Resource{}).Allowed)
}

func TestDecisionErr(t *testing.T) {
	assert.NoError(t, Decision{Allowed: true}.Err())
	assert.ErrorIs(t, Decision{Reason: ReasonUnauthenticated}.Err(), apperrors.ErrUnauthenticated)
	assert.ErrorIs(t, Decision{Reason: ReasonNotOwner}.Err(), apperrors.ErrForbidden)
	assert.ErrorIs(t, Can(attendee, AccountList, Resource{}), apperrors.ErrForbidden)
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "not owner", ReasonNotOwner.String())
	assert.Equal(t, "unknown", Reason(99).String())
}
