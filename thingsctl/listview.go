package thingsctl

// ListView identifies one of the built-in Things lists.
type ListView string

const (
	ListInbox    ListView = "inbox"
	ListToday    ListView = "today"
	ListUpcoming ListView = "upcoming"
	ListAnytime  ListView = "anytime"
	ListSomeday  ListView = "someday"
	ListLogbook  ListView = "logbook"
	ListTrash    ListView = "trash"
)

// DisplayName returns the list name as shown in the Things UI.
func (v ListView) DisplayName() string {
	switch v {
	case ListInbox:
		return "Inbox"
	case ListToday:
		return "Today"
	case ListUpcoming:
		return "Upcoming"
	case ListAnytime:
		return "Anytime"
	case ListSomeday:
		return "Someday"
	case ListLogbook:
		return "Logbook"
	case ListTrash:
		return "Trash"
	default:
		return string(v)
	}
}

// ParseListView maps a command verb to a list view.
func ParseListView(s string) (ListView, bool) {
	switch ListView(s) {
	case ListInbox, ListToday, ListUpcoming, ListAnytime, ListSomeday, ListLogbook, ListTrash:
		return ListView(s), true
	default:
		return "", false
	}
}
