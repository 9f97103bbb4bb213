package model

// User is a registered account. The full record, password included, is what
// gets persisted, and the active login is a full copy of one of these under
// the session key. Passwords are stored exactly as entered and compared
// byte for byte on login.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Booking is an appointment record. Date is a zero-padded DD/MM/YYYY string
// and Time a 12-hour clock string such as "2:30 PM"; both are kept in their
// stored string form so existing persisted data round-trips unchanged.
type Booking struct {
	ID          int64  `json:"id"`
	DoctorName  string `json:"doctorName"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Category    string `json:"category"`
	TypeOfVisit string `json:"typeOfVisit"`
	Status      string `json:"status,omitempty"`
}

// Reminder is a note tied to a due date, DD/MM/YYYY like Booking.Date.
type Reminder struct {
	ID         int64  `json:"id"`
	DoctorName string `json:"doctorName"`
	DueDate    string `json:"dueDate"`
	Notes      string `json:"notes"`
}
