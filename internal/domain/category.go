package domain

// Category identifies the department a request is routed to.
type Category string

const (
	CategoryAcademic Category = "Academic"
	CategoryHostel   Category = "Hostel"
	CategoryFinance  Category = "Finance"
	CategoryLibrary  Category = "Library"
	CategoryIT       Category = "IT"
)

// CategoryMaintenance is the department that dispatches technicians.
const CategoryMaintenance = CategoryHostel

var cannedReplies = map[Category]string{
	CategoryAcademic: "Your question has been forwarded to the Academic Department.",
	CategoryHostel:   "Your issue has been sent to the Hostel Administration.",
	CategoryFinance:  "Finance department has been notified.",
	CategoryLibrary:  "Library department will handle your request.",
	CategoryIT:       "IT Support has been informed about your issue.",
}

// Reply returns the canned acknowledgement for the category.
func (c Category) Reply() string {
	if reply, ok := cannedReplies[c]; ok {
		return reply
	}
	return "Your request has been recorded."
}
