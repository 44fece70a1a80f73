package export

// Column sets for each exportable entity, keyed by the view model json tags.
var (
	OrderColumns = []Column{
		{Key: "id", Header: "Order ID"},
		{Key: "eventTitle", Header: "Event"},
		{Key: "customerName", Header: "Customer"},
		{Key: "customerEmail", Header: "Email"},
		{Key: "offerType", Header: "Tickets"},
		{Key: "ticketCount", Header: "Quantity"},
		{Key: "total", Header: "Total"},
		{Key: "statusLabel", Header: "Status"},
		{Key: "orderDate", Header: "Ordered"},
	}

	TransactionColumns = []Column{
		{Key: "id", Header: "Transaction ID"},
		{Key: "reservationId", Header: "Order ID"},
		{Key: "eventTitle", Header: "Event"},
		{Key: "customerName", Header: "Customer"},
		{Key: "gross", Header: "Gross"},
		{Key: "fee", Header: "Platform Fee"},
		{Key: "net", Header: "Net"},
		{Key: "currency", Header: "Currency"},
		{Key: "statusLabel", Header: "Status"},
		{Key: "provider", Header: "Provider"},
		{Key: "date", Header: "Date"},
	}

	AttendeeColumns = []Column{
		{Key: "ticketCode", Header: "Ticket"},
		{Key: "name", Header: "Name"},
		{Key: "email", Header: "Email"},
		{Key: "ticketType", Header: "Ticket Type"},
		{Key: "statusLabel", Header: "Status"},
		{Key: "checkedIn", Header: "Checked In"},
		{Key: "checkInTime", Header: "Check-in Time"},
	}

	ReviewColumns = []Column{
		{Key: "eventTitle", Header: "Event"},
		{Key: "userName", Header: "Reviewer"},
		{Key: "rating", Header: "Rating"},
		{Key: "comment", Header: "Comment"},
		{Key: "date", Header: "Date"},
	}

	SongColumns = []Column{
		{Key: "title", Header: "Title"},
		{Key: "artist", Header: "Artist"},
		{Key: "album", Header: "Album"},
		{Key: "suggestedBy", Header: "Suggested By"},
	}

	EventColumns = []Column{
		{Key: "id", Header: "Event ID"},
		{Key: "title", Header: "Title"},
		{Key: "date", Header: "Date"},
		{Key: "location", Header: "Location"},
		{Key: "organizerName", Header: "Organizer"},
		{Key: "price", Header: "Price"},
		{Key: "attendeeCount", Header: "Attendees"},
		{Key: "statusLabel", Header: "Status"},
		{Key: "tags", Header: "Tags"},
	}

	VenueColumns = []Column{
		{Key: "name", Header: "Venue"},
		{Key: "address", Header: "Address"},
		{Key: "locality", Header: "Locality"},
		{Key: "capacity", Header: "Capacity"},
		{Key: "lat", Header: "Latitude"},
		{Key: "lng", Header: "Longitude"},
	}

	MonthlyTaxColumns = []Column{
		{Key: "label", Header: "Month"},
		{Key: "transactionCount", Header: "Transactions"},
		{Key: "gross", Header: "Gross"},
		{Key: "fee", Header: "Platform Fees"},
		{Key: "net", Header: "Net"},
		{Key: "currency", Header: "Currency"},
	}
)

// ColumnsFor returns the column set of an exportable entity name.
func ColumnsFor(entity string) ([]Column, bool) {
	switch entity {
	case "orders":
		return OrderColumns, true
	case "transactions":
		return TransactionColumns, true
	case "attendees":
		return AttendeeColumns, true
	case "reviews":
		return ReviewColumns, true
	case "songs":
		return SongColumns, true
	case "events":
		return EventColumns, true
	case "venues":
		return VenueColumns, true
	case "tax":
		return MonthlyTaxColumns, true
	}
	return nil, false
}
