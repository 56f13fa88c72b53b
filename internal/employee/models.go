package employee

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusMeeting  = "meeting"
)

// ExternalUser is a record as served by the company directory.
type ExternalUser struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobileNumber"`
	Designation  string    `json:"designation"`
	Department   string    `json:"department"`
	CompanyName  []Company `json:"companyName"`
	Report       *Manager  `json:"report"`
}

type Company struct {
	CompanyName string `json:"companyName"`
}

type Manager struct {
	Name string `json:"name"`
}

type Location struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Address   string  `json:"address"`
	Timestamp string  `json:"timestamp"`
}

type Employee struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Status      string   `json:"status"`
	Location    Location `json:"location"`
	LastUpdate  string   `json:"lastUpdate"`
	CurrentTask string   `json:"currentTask,omitempty"`
	DeviceID    string   `json:"deviceId"`
	Designation string   `json:"designation,omitempty"`
	Department  string   `json:"department,omitempty"`
	CompanyName string   `json:"companyName,omitempty"`
	ReportTo    string   `json:"reportTo,omitempty"`
}

type LocationUpdate struct {
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Accuracy *float64 `json:"accuracy"`
}

type StatusUpdate struct {
	Status      string `json:"status"`
	CurrentTask string `json:"currentTask"`
}

type ListResponse struct {
	Employees []Employee `json:"employees"`
	Total     int        `json:"total"`
}

type LocationUpdateResponse struct {
	Success  bool     `json:"success"`
	Employee Employee `json:"employee"`
}

type RefreshResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Employees []Employee `json:"employees"`
}
