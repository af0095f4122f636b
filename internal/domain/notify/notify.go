// Package notify turns service-request change events into user-facing
// notifications.
package notify

import (
	"fmt"

	"gmrportal/internal/domain/entity"
)

type EventKind int

const (
	Inserted EventKind = iota + 1
	Updated
)

func (k EventKind) String() string {
	switch k {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one row change. Old is nil for inserts and for updates where the
// previous row is unknown.
type Event struct {
	Kind EventKind
	Old  *entity.ServiceRequest
	New  *entity.ServiceRequest
}

func InsertedEvent(row *entity.ServiceRequest) Event {
	return Event{Kind: Inserted, New: row.Clone()}
}

func UpdatedEvent(old, cur *entity.ServiceRequest) Event {
	return Event{Kind: Updated, Old: old.Clone(), New: cur.Clone()}
}

// UserID is the owner the event should be delivered to.
func (e Event) UserID() string {
	if e.New != nil {
		return e.New.UserID
	}
	if e.Old != nil {
		return e.Old.UserID
	}
	return ""
}

type NotificationKind string

const (
	KindCreated  NotificationKind = "created"
	KindStatus   NotificationKind = "status"
	KindProgress NotificationKind = "progress"
	KindNote     NotificationKind = "note"
)

type Notification struct {
	Kind        NotificationKind `json:"kind"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	RequestID   string           `json:"request_id"`
}

type message struct {
	title       string
	description string
}

var statusMessages = map[entity.RequestStatus]message{
	entity.StatusInProgress: {"🚀 Service Started", "Your service request is now being worked on by our CA team."},
	entity.StatusCompleted:  {"✅ Service Completed", "Your service request has been completed successfully!"},
	entity.StatusCancelled:  {"❌ Service Cancelled", "Your service request has been cancelled."},
}

var progressMilestones = map[int]bool{25: true, 50: true, 75: true}

// Reduce maps one event to the notifications it should raise. It looks only
// at the event itself, so delivering the same event twice yields the same
// result both times.
func Reduce(ev Event) []Notification {
	switch ev.Kind {
	case Inserted:
		if ev.New == nil {
			return nil
		}
		return []Notification{{
			Kind:        KindCreated,
			Title:       "📝 New Service Request",
			Description: "A new service request has been created for your account.",
			RequestID:   ev.New.ID,
		}}
	case Updated:
		if ev.New == nil || ev.Old == nil {
			return nil
		}
		return reduceUpdate(ev.Old, ev.New)
	}
	return nil
}

func reduceUpdate(old, cur *entity.ServiceRequest) []Notification {
	var out []Notification
	oldStatus := old.Status.Normalize()
	newStatus := cur.Status.Normalize()

	if oldStatus != "" && newStatus != oldStatus {
		msg, ok := statusMessages[newStatus]
		if !ok {
			msg = message{
				title:       "📋 Status Updated",
				description: fmt.Sprintf("Your service request status changed to %s.", newStatus.Label()),
			}
		}
		out = append(out, Notification{Kind: KindStatus, Title: msg.title, Description: msg.description, RequestID: cur.ID})
	}

	if cur.Progress != old.Progress && newStatus != entity.StatusCancelled {
		switch {
		case cur.Progress == 100 && newStatus != entity.StatusCompleted:
			out = append(out, Notification{
				Kind:        KindProgress,
				Title:       "📊 Progress Complete",
				Description: "Your service is 100% complete and awaiting final review.",
				RequestID:   cur.ID,
			})
		case progressMilestones[cur.Progress]:
			out = append(out, Notification{
				Kind:        KindProgress,
				Title:       "📊 Progress Update",
				Description: fmt.Sprintf("Your service request is now %d%% complete.", cur.Progress),
				RequestID:   cur.ID,
			})
		}
	}

	if old.NotesText() == "" && cur.NotesText() != "" {
		out = append(out, Notification{
			Kind:        KindNote,
			Title:       "💬 New Note Added",
			Description: "Your CA has added a note to your service request.",
			RequestID:   cur.ID,
		})
	}

	return out
}
