package student

// Store field names
const (
	FieldRollNumber = "rollNumber"
	FieldName       = "name"
	FieldCheckIn    = "checkin"
	FieldCheckOut   = "checkout"
)

// Data is the content of a student document.
type Data struct {
	RollNumber string `json:"rollNumber" db:"roll_number"`
	Name       string `json:"name" db:"name"`
	CheckIn    string `json:"checkin" db:"checkin"`
	CheckOut   string `json:"checkout,omitempty" db:"checkout"` // empty until the student leaves
}

// Record is a student document: the store-assigned ID and its Data.
type Record struct {
	ID   string `json:"id"`
	Data Data   `json:"data"`
}

func (r Record) CheckedOut() bool {
	return r.Data.CheckOut != ""
}

// Row is a rendered roster line.
type Row struct {
	SrNo         int    `json:"srNo"`
	ID           string `json:"id"`
	RollNumber   string `json:"rollNumber"`
	Name         string `json:"name"`
	CheckIn      string `json:"checkin"`
	CheckOut     string `json:"checkout"`
	CheckedOut   bool   `json:"checkedOut"`
	DaysAttended int    `json:"daysAttended"`
	Percentage   string `json:"percentage"`
}

// Attendance is the tally entry of one registration number.
type Attendance struct {
	Days       int    `json:"days"`
	Percentage string `json:"percentage"`
}

// CheckoutRequest is the payload of a checkout. ID only comes from the route.
type CheckoutRequest struct {
	ID   string `json:"-" param:"id" validate:"required,docid"`
	Name string `json:"name"`
}
